package search

import (
	"errors"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ClampLimit maps non-positive limits to DefaultLimit and caps the rest at MaxLimit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return min(limit, MaxLimit)
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseLimit reads the leading number of raw the way an integer cast of a
// query string does: "12abc" is 12, "1e3" is 1000 and "2.9" is 2. Anything
// without one yields 0, which ClampLimit turns into the default.
func ParseLimit(raw string) int {
	num := leadingNumber.FindString(strings.TrimSpace(raw))
	if num == "" {
		return 0
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	const ceiling = MaxLimit * 1000
	switch {
	case f > ceiling:
		return ceiling
	case f < -ceiling:
		return -ceiling
	}
	return int(f)
}

// FilterContains keeps the values containing query, ignoring case. An empty
// query keeps everything.
func FilterContains(values []string, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return values
	}
	lower := cases.Lower(language.Und)
	needle := lower.String(query)

	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.Contains(lower.String(v), needle) {
			out = append(out, v)
		}
	}
	return out
}

// SortNatural sorts values in place with NaturalLess.
func SortNatural(values []string) {
	slices.SortFunc(values, func(a, b string) int {
		switch {
		case NaturalLess(a, b):
			return -1
		case NaturalLess(b, a):
			return 1
		}
		return 0
	})
}

// Refine filters, sorts and truncates collected values for a response.
func Refine(values []string, query string, limit int) []string {
	out := FilterContains(slices.Clone(values), query)
	SortNatural(out)
	if limit = ClampLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out
}
