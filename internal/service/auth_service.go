package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"artha-pay/internal/custom_err"
	"artha-pay/internal/models"
	"artha-pay/internal/storage/postgres"
)

type Auth interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	ValidateToken(tokenString string) (*models.JWTClaims, error)
}

type AuthService struct {
	userRepo      postgres.UserRepository
	jwtSecret     []byte
	jwtExpiration time.Duration
	log           *slog.Logger
}

func NewAuthService(
	userRepo postgres.UserRepository,
	jwtSecret string,
	jwtExpiration time.Duration,
	log *slog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: jwtExpiration,
		log:           log,
	}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	const op = "service.Register"

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", custom_err.ErrInvalidInput, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("failed to hash password", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	created, err := s.userRepo.Create(ctx, &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	})
	if err != nil {
		if errors.Is(err, custom_err.ErrUsernameExists) || errors.Is(err, custom_err.ErrEmailExists) {
			return nil, err
		}
		s.log.Error("failed to register user", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user registered successfully",
		slog.String("op", op),
		slog.String("user_id", created.ID.String()),
		slog.String("username", created.Username))

	return &models.RegisterResponse{
		Message: "User registered successfully",
		UserID:  created.ID,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	const op = "service.Login"
	// сравнение с фиктивным хэшем выравнивает время ответа для несуществующих логинов
	const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

	username := models.NormalizeUsername(req.Username)
	if username == "" || req.Password == "" {
		return nil, custom_err.ErrInvalidInput
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, custom_err.ErrNotFound) {
		s.log.Error("failed to get user", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashToCompare := dummyHash
	if user != nil {
		hashToCompare = user.PasswordHash
	}

	err = bcrypt.CompareHashAndPassword([]byte(hashToCompare), []byte(req.Password))
	if user == nil || err != nil {
		return nil, custom_err.ErrInvalidCredentials
	}

	token, err := s.generateJWT(user)
	if err != nil {
		s.log.Error("failed to generate JWT", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user logged in successfully",
		slog.String("op", op),
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))

	return &models.LoginResponse{Token: token}, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, custom_err.ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, custom_err.ErrTokenNotActive
		}
		return nil, custom_err.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == uuid.Nil || claims.Username == "" {
		return nil, custom_err.ErrInvalidToken
	}

	return claims, nil
}

func (s *AuthService) generateJWT(user *models.User) (string, error) {
	now := time.Now()
	claims := models.JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
