package facility

import "strings"

// Category names the kind of field value surfaced by autocomplete.
type Category string

const (
	CategoryOperator        Category = "operator"
	CategoryFacility        Category = "facility"
	CategoryHuman           Category = "human"
	CategoryType            Category = "type"
	CategoryStatus          Category = "status"
	CategoryGender          Category = "gender"
	CategoryLocation        Category = "location"
	CategoryLicensing       Category = "licensing"
	CategoryMembership      Category = "membership"
	CategoryAccreditation   Category = "accreditation"
	CategoryCertification   Category = "certification"
	CategoryInvestor        Category = "investor"
	CategoryRole            Category = "role"
	CategoryOperatingPeriod Category = "operatingperiod"
)

// Categories lists every canonical tag in a stable order.
var Categories = []Category{
	CategoryOperator,
	CategoryFacility,
	CategoryHuman,
	CategoryType,
	CategoryStatus,
	CategoryGender,
	CategoryLocation,
	CategoryLicensing,
	CategoryMembership,
	CategoryAccreditation,
	CategoryCertification,
	CategoryInvestor,
	CategoryRole,
	CategoryOperatingPeriod,
}

var categoryAliases = map[string]Category{
	"operators":          CategoryOperator,
	"facilities":         CategoryFacility,
	"facilityname":       CategoryFacility,
	"facilitynames":      CategoryFacility,
	"humans":             CategoryHuman,
	"people":             CategoryHuman,
	"staff":              CategoryHuman,
	"facilitytype":       CategoryType,
	"facilitytypes":      CategoryType,
	"types":              CategoryType,
	"statuses":           CategoryStatus,
	"genders":            CategoryGender,
	"locations":          CategoryLocation,
	"licences":           CategoryLicensing,
	"licenses":           CategoryLicensing,
	"licensing":          CategoryLicensing,
	"accreditations":     CategoryAccreditation,
	"memberships":        CategoryMembership,
	"certifications":     CategoryCertification,
	"investors":          CategoryInvestor,
	"roles":              CategoryRole,
	"staffroles":         CategoryRole,
	"operatingperiods":   CategoryOperatingPeriod,
	"operatingperiod":    CategoryOperatingPeriod,
	"operating_period":   CategoryOperatingPeriod,
	"operationyears":     CategoryOperatingPeriod,
	"operatingyears":     CategoryOperatingPeriod,
	"operation_years":    CategoryOperatingPeriod,
	"yearsofoperation":   CategoryOperatingPeriod,
	"years_of_operation": CategoryOperatingPeriod,
}

// Aliases returns a copy of the alias table.
func Aliases() map[string]Category {
	out := make(map[string]Category, len(categoryAliases))
	for k, v := range categoryAliases {
		out[k] = v
	}
	return out
}

// Valid reports whether c is one of the canonical tags.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string { return string(c) }

// ResolveCategory maps raw user input (case-insensitive, alias aware) to a canonical tag.
func ResolveCategory(raw string) (Category, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return "", false
	}
	c := Category(key)
	if alias, ok := categoryAliases[key]; ok {
		c = alias
	}
	if !c.Valid() {
		return "", false
	}
	return c, true
}
