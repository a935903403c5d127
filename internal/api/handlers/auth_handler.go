package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"artha-pay/internal/api/middlew"
	"artha-pay/internal/custom_err"
	"artha-pay/internal/models"
	"artha-pay/internal/service"
	"artha-pay/pkg/response"
)

type AuthHandler struct {
	service service.Auth
}

func NewAuthHandler(service service.Auth) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register godoc
// @Summary      Регистрация пользователя
// @Description  Создает нового пользователя; логин приводится к нижнему регистру
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.RegisterRequest true "Данные регистрации"
// @Success      201 {object} models.RegisterResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Register"
	log := middlew.GetLogger(r.Context())

	var req models.RegisterRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		log.Warn("invalid JSON body", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrUsernameExists):
			response.WriteJSONError(w, log, http.StatusConflict, "username_exists", "Username already exists")
		case errors.Is(err, custom_err.ErrEmailExists):
			response.WriteJSONError(w, log, http.StatusConflict, "email_exists", "Email already exists")
		case errors.Is(err, custom_err.ErrInvalidInput):
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_input", err.Error())
		default:
			log.Error("failed to register user", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Internal error")
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusCreated, resp)
}

// Login godoc
// @Summary      Авторизация пользователя
// @Description  Авторизует пользователя и возвращает JWT токен
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.LoginRequest true "Данные входа"
// @Success      200 {object} models.LoginResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Login"
	log := middlew.GetLogger(r.Context())

	var req models.LoginRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		log.Warn("invalid JSON body", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	log.Info("user login attempt", slog.String("op", op), slog.String("username", req.Username))

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrInvalidCredentials):
			response.WriteJSONError(w, log, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password")
		case errors.Is(err, custom_err.ErrInvalidInput):
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_input", "username and password are required")
		default:
			log.Error("failed to login user", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "An internal error occurred")
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, resp)
}
