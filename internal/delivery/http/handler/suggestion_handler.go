package handler

import (
	"strings"

	"facility-registry/internal/delivery/http/dto"
	"facility-registry/internal/delivery/http/middleware"
	"facility-registry/internal/pkg/response"
	"facility-registry/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/tidwall/gjson"
)

type SuggestionHandler struct {
	uc usecase.SuggestionUsecase
}

func NewSuggestionHandler(uc usecase.SuggestionUsecase) *SuggestionHandler {
	return &SuggestionHandler{uc: uc}
}

func (h *SuggestionHandler) RegisterRoutes(public fiber.Router, admin fiber.Router) {
	if public != nil {
		public.Post("/suggestions", h.Submit)
		public.Post("/save-suggestion", h.Submit)
	}
	if admin != nil {
		admin.Get("/suggestions", h.List)
		admin.Post("/suggestions/process", h.Process)
	}
}

func (h *SuggestionHandler) Submit(c fiber.Ctx) error {
	res, err := h.uc.Submit(c.Context(), usecase.SubmitSuggestionInput{
		Body:        c.Body(),
		SubmitterIP: ClientIP(c),
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.SubmitSuggestionResponse{
		Success:      true,
		Message:      "Suggestion submitted successfully",
		SuggestionID: res.ID,
		MasterID:     res.MasterID,
	})
}

func (h *SuggestionHandler) List(c fiber.Ctx) error {
	edits, err := h.uc.List(c.Context(), c.Query("status", "pending"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.NewSuggestionListResponse(edits))
}

// Process handles {id, action}. The id may be a JSON number or a numeric string.
func (h *SuggestionHandler) Process(c fiber.Ctx) error {
	body := c.Body()
	if !gjson.ValidBytes(body) {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid JSON body", "", nil)
	}
	root := gjson.ParseBytes(body)

	msg, err := h.uc.Process(c.Context(), root.Get("id").Int(), root.Get("action").String())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.MessageResponse{Success: true, Message: msg})
}

// ClientIP prefers X-Forwarded-For (first hop), then X-Real-IP, then the peer address.
func ClientIP(c fiber.Ctx) string {
	if fwd := strings.TrimSpace(c.Get(fiber.HeaderXForwardedFor)); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(c.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return c.IP()
}
