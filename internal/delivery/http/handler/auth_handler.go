package handler

import (
	"facility-registry/internal/delivery/http/dto"
	"facility-registry/internal/delivery/http/middleware"
	"facility-registry/internal/pkg/response"
	"facility-registry/internal/usecase"
	ucauth "facility-registry/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/login", h.Login)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req ucauth.LoginInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid JSON body", "", err)
	}

	session, err := h.uc.Login(c.Context(), req)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, dto.LoginResponse{
		Success:     true,
		AccessToken: session.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   session.ExpiresAt,
		Username:    session.Username,
	})
}
