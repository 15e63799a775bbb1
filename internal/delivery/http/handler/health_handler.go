package handler

import (
	"context"
	"time"

	"facility-registry/internal/delivery/http/dto"
	"facility-registry/internal/delivery/http/middleware"
	"facility-registry/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	clients func() int
}

// NewHealthHandler checks db on every probe. clients may be nil.
func NewHealthHandler(db Pinger, clients func() int) *HealthHandler {
	return &HealthHandler{db: db, clients: clients}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			return middleware.NewAppError(fiber.StatusServiceUnavailable, "Database unavailable", "", err)
		}
	}

	n := 0
	if h.clients != nil {
		n = h.clients()
	}
	return response.Success(c, fiber.StatusOK, dto.HealthResponse{Success: true, Status: "ok", Clients: n})
}
