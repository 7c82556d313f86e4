package handler

import (
	"github.com/deppfellow/nzwalks/internal/dto"
	"github.com/deppfellow/nzwalks/internal/server"
	"github.com/deppfellow/nzwalks/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

func (h *AuthHandler) Register(c echo.Context, r *dto.RegisterRequest) (*dto.MessageResponse, error) {
	if err := h.auth.Register(c.Request().Context(), r); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "User registered successfully. Please log in."}, nil
}

func (h *AuthHandler) Login(c echo.Context, r *dto.LoginRequest) (*dto.LoginResponse, error) {
	accessToken, err := h.auth.Login(c.Request().Context(), r)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Message:     "Login successful.",
		AccessToken: accessToken,
	}, nil
}
