package dto

type AutocompleteResponse struct {
	Success bool     `json:"success"`
	Values  []string `json:"values"`
	Count   int      `json:"count"`
}
