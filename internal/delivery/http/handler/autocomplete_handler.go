package handler

import (
	"facility-registry/internal/delivery/http/dto"
	"facility-registry/internal/pkg/response"
	"facility-registry/internal/search"
	"facility-registry/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AutocompleteHandler struct {
	uc usecase.AutocompleteUsecase
}

func NewAutocompleteHandler(uc usecase.AutocompleteUsecase) *AutocompleteHandler {
	return &AutocompleteHandler{uc: uc}
}

// RegisterRoutes mounts the autocomplete endpoints. cors, when set, runs ahead
// of every route, including the OPTIONS ones.
func (h *AutocompleteHandler) RegisterRoutes(r fiber.Router, cors fiber.Handler) {
	if r == nil {
		return
	}
	for _, path := range []string{"/autocomplete", "/get-autocomplete"} {
		if cors != nil {
			r.Get(path, cors, h.Autocomplete)
			r.Options(path, cors, h.Preflight)
			continue
		}
		r.Get(path, h.Autocomplete)
		r.Options(path, h.Preflight)
	}
}

// Preflight answers any OPTIONS request with 204, CORS preflight or not.
func (h *AutocompleteHandler) Preflight(c fiber.Ctx) error {
	c.Set(fiber.HeaderAllow, "GET, OPTIONS")
	return c.SendStatus(fiber.StatusNoContent)
}

// Autocomplete serves GET ?category=&q=&limit=.
func (h *AutocompleteHandler) Autocomplete(c fiber.Ctx) error {
	res, err := h.uc.Search(c.Context(), usecase.AutocompleteParams{
		Category: c.Query("category"),
		Query:    c.Query("q"),
		Limit:    search.ParseLimit(c.Query("limit")),
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	values := res.Values
	if values == nil {
		values = []string{}
	}
	return response.Success(c, fiber.StatusOK, dto.AutocompleteResponse{Success: true, Values: values, Count: res.Count})
}
