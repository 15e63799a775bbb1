package facility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCategory_Aliases(t *testing.T) {
	cases := map[string]Category{
		"operator":           CategoryOperator,
		" Operators ":        CategoryOperator,
		"LICENCES":           CategoryLicensing,
		"licenses":           CategoryLicensing,
		"people":             CategoryHuman,
		"staffroles":         CategoryRole,
		"years_of_operation": CategoryOperatingPeriod,
		"facilityNames":      CategoryFacility,
	}
	for in, want := range cases {
		got, ok := ResolveCategory(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
}

func TestResolveCategory_Unknown(t *testing.T) {
	for _, in := range []string{"", "   ", "widgets", "operatorz"} {
		_, ok := ResolveCategory(in)
		assert.False(t, ok, in)
	}
}

func TestResolveCategory_Idempotent(t *testing.T) {
	for alias := range Aliases() {
		once, ok := ResolveCategory(alias)
		assert.True(t, ok, alias)
		twice, ok := ResolveCategory(string(once))
		assert.True(t, ok, alias)
		assert.Equal(t, once, twice, alias)
	}
	for _, c := range Categories {
		got, ok := ResolveCategory(string(c))
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
}

func TestAliasesTargetCanonicalTags(t *testing.T) {
	for alias, c := range Aliases() {
		assert.True(t, c.Valid(), alias)
	}
	assert.Len(t, Categories, 14)
}

func TestParseSuggestionStatus(t *testing.T) {
	s, ok := ParseSuggestionStatus("Approved")
	assert.True(t, ok)
	assert.Equal(t, StatusApproved, s)

	s, ok = ParseSuggestionStatus("all")
	assert.True(t, ok)
	assert.Equal(t, SuggestionStatus(""), s)

	_, ok = ParseSuggestionStatus("archived")
	assert.False(t, ok)
}

func TestParseModerationAction(t *testing.T) {
	a, ok := ParseModerationAction(" APPROVE ")
	assert.True(t, ok)
	assert.Equal(t, ActionApprove, a)

	_, ok = ParseModerationAction("delete")
	assert.False(t, ok)
}
