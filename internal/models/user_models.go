package models

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// User представляет пользователя системы
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// RegisterRequest запрос на регистрацию
type RegisterRequest struct {
	Username string `json:"username" example:"aditya"`
	Password string `json:"password" example:"secret123"`
	Email    string `json:"email" example:"aditya@example.com"`
}

// RegisterResponse ответ на регистрацию
type RegisterResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"user_id"`
}

// LoginRequest запрос на авторизацию
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse ответ на авторизацию
type LoginResponse struct {
	Token string `json:"token"`
}

// JWTClaims кастомные claims для JWT токена
type JWTClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

// NormalizeUsername приводит username к нижнему регистру: логины регистронезависимы.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (r *RegisterRequest) Normalize() {
	r.Username = NormalizeUsername(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r RegisterRequest) Validate() error {
	if r.Username == "" {
		return errors.New("username is required")
	}
	if len(r.Username) < 3 || len(r.Username) > 50 {
		return errors.New("username must be 3-50 characters")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	if len(r.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	if r.Email == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(r.Email, "@") {
		return errors.New("email is invalid")
	}
	return nil
}

// DashboardResponse главная страница пользователя
type DashboardResponse struct {
	Username         string     `json:"username"`
	TransactionCount int        `json:"transaction_count"`
	LastRiskPercent  *int       `json:"last_risk_percent"`
	LastRiskLevel    string     `json:"last_risk_level,omitempty"`
	LastRiskPhase    string     `json:"last_risk_phase,omitempty"`
	LastAssessedAt   *time.Time `json:"last_assessed_at,omitempty"`
}
