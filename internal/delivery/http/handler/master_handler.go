package handler

import (
	"strings"

	"facility-registry/internal/delivery/http/dto"
	"facility-registry/internal/delivery/http/middleware"
	"facility-registry/internal/pkg/response"
	"facility-registry/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MasterHandler struct {
	uc usecase.MasterUsecase
}

func NewMasterHandler(uc usecase.MasterUsecase) *MasterHandler {
	return &MasterHandler{uc: uc}
}

func (h *MasterHandler) RegisterRoutes(public fiber.Router, admin fiber.Router) {
	if public != nil {
		public.Get("/master-data", h.List)
	}
	if admin != nil {
		admin.Post("/master", h.Mutate)
	}
}

func (h *MasterHandler) List(c fiber.Ctx) error {
	projects, err := h.uc.ListProjects(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.NewMasterDataResponse(projects))
}

// Mutate handles {action: save|delete, projectName, data}. A missing action means save.
func (h *MasterHandler) Mutate(c fiber.Ctx) error {
	var req dto.MasterActionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid JSON body", "", err)
	}

	var (
		msg string
		err error
	)
	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "", "save":
		msg, err = h.uc.Save(c.Context(), req.ProjectName, req.Data)
	case "delete":
		msg, err = h.uc.Delete(c.Context(), req.ProjectName)
	default:
		return middleware.NewAppError(fiber.StatusBadRequest, "Action must be save or delete", "", nil)
	}
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.MessageResponse{Success: true, Message: msg})
}
