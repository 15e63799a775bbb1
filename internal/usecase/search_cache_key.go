package usecase

import (
	"strconv"
	"strings"

	"facility-registry/internal/domain/facility"
)

const (
	autocompleteValuesPrefix = "autocomplete:values:"
	autocompleteLockPrefix   = "autocomplete:lock:"

	AutocompleteGenerationKey = "autocomplete:gen"
	AutocompleteCachePattern  = autocompleteValuesPrefix + "*"
)

// AutocompleteValuesKey names the cached, unfiltered value list of a category
// within one cache generation. Strict and lenient collection never share an entry.
func AutocompleteValuesKey(generation int64, category facility.Category, strict bool) string {
	mode := "lenient"
	if strict {
		mode = "strict"
	}
	return autocompleteValuesPrefix + strconv.FormatInt(generation, 10) + ":" + mode + ":" + string(category)
}

func AutocompleteLockKey(valuesKey string) string {
	valuesKey = strings.TrimSpace(valuesKey)
	if strings.HasPrefix(valuesKey, autocompleteValuesPrefix) {
		return autocompleteLockPrefix + strings.TrimPrefix(valuesKey, autocompleteValuesPrefix)
	}
	return autocompleteLockPrefix + valuesKey
}
