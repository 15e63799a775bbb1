package search

import (
	"strconv"
	"strings"

	"facility-registry/internal/domain/facility"

	"github.com/tidwall/gjson"
)

// Collector walks normalized payloads and feeds category values into a ValueSet.
type Collector struct {
	// Strict skips entries that expose none of the name-like keys instead of
	// adding each of their scalar children.
	Strict bool
}

type extractor func(c Collector, data gjson.Result, set *ValueSet)

var extractors = map[facility.Category]extractor{
	facility.CategoryOperator:        collectOperators,
	facility.CategoryFacility:        collectFacilities,
	facility.CategoryHuman:           collectHumans,
	facility.CategoryType:            collectTypes,
	facility.CategoryStatus:          collectStatuses,
	facility.CategoryGender:          collectGenders,
	facility.CategoryLocation:        collectLocations,
	facility.CategoryLicensing:       collectLicensing,
	facility.CategoryMembership:      collectMemberships,
	facility.CategoryAccreditation:   collectAccreditations,
	facility.CategoryCertification:   collectCertifications,
	facility.CategoryInvestor:        collectInvestors,
	facility.CategoryRole:            collectRoles,
	facility.CategoryOperatingPeriod: collectOperatingPeriods,
}

// Collect adds every value of category found in data. It reports false for a tag
// without an extractor; such tags must be rejected before reaching here.
func (c Collector) Collect(category facility.Category, data gjson.Result, set *ValueSet) bool {
	fn, ok := extractors[category]
	if !ok || set == nil {
		return false
	}
	fn(c, data, set)
	return true
}

// nameKeys are tried on object values; every non-blank one is added.
var nameKeys = []string{"name", "value", "label", "title", "text"}

// entryKeys are tried on list entries; the first present one wins.
var entryKeys = []string{"name", "value", "label"}

func (c Collector) addValue(set *ValueSet, v gjson.Result) {
	switch v.Type {
	case gjson.Null, gjson.False:
		return
	case gjson.True:
		set.Add("1")
		return
	case gjson.Number:
		set.Add(numberText(v))
		return
	case gjson.String:
		set.Add(v.Str)
		return
	}

	if !container(v) {
		return
	}

	handled := false
	if v.IsObject() {
		for _, key := range nameKeys {
			if nested := field(v, key); !Blank(nested) {
				c.addValue(set, nested)
				handled = true
			}
		}
	}
	if handled || c.Strict {
		return
	}

	each(v, func(child gjson.Result) {
		if !container(child) {
			c.addValue(set, child)
		}
	})
}

func (c Collector) addValues(set *ValueSet, list gjson.Result) {
	each(list, func(entry gjson.Result) {
		if entry.IsObject() {
			for _, key := range entryKeys {
				if nested := field(entry, key); present(nested) {
					c.addValue(set, nested)
					return
				}
			}
		}
		c.addValue(set, entry)
	})
}

// numberText renders integers without a fraction and other numbers in shortest form.
func numberText(v gjson.Result) string {
	raw := strings.TrimSpace(v.Raw)
	if raw != "" && !strings.ContainsAny(raw, ".eE") {
		return strings.TrimPrefix(raw, "+")
	}
	return strconv.FormatFloat(v.Num, 'f', -1, 64)
}

func operatorOf(data gjson.Result) gjson.Result {
	if op := field(data, "operator"); op.IsObject() && !Blank(op) {
		return op
	}
	return gjson.Result{}
}

func eachFacility(data gjson.Result, fn func(f gjson.Result)) {
	each(field(data, "facilities"), func(f gjson.Result) {
		if f.IsObject() {
			fn(f)
		}
	})
}

func collectOperators(c Collector, data gjson.Result, set *ValueSet) {
	if op := operatorOf(data); op.Exists() {
		c.addValue(set, field(op, "name"))
		c.addValue(set, field(op, "currentName"))
		c.addValues(set, field(op, "otherNames"))
		c.addValues(set, field(op, "parentCompanies"))
		c.addValues(set, field(op, "previousNames"))
	}

	eachFacility(data, func(f gjson.Result) {
		c.addValue(set, field(field(f, "identification"), "currentOperator"))
		c.addValues(set, field(f, "otherOperators"))
	})
}

func collectFacilities(c Collector, data gjson.Result, set *ValueSet) {
	eachFacility(data, func(f gjson.Result) {
		id := field(f, "identification")
		c.addValue(set, field(id, "name"))
		c.addValue(set, field(id, "currentName"))
		c.addValues(set, field(id, "otherNames"))
	})
}

func collectHumans(c Collector, data gjson.Result, set *ValueSet) {
	if op := operatorOf(data); op.Exists() {
		c.addValue(set, field(op, "ceo"))
		if ks := field(op, "keyStaff"); container(ks) && !Blank(ks) {
			c.addValue(set, field(ks, "ceo"))
			c.addValues(set, field(ks, "founders"))
			c.addValues(set, field(ks, "keyExecutives"))
			c.addValues(set, field(ks, "boardMembers"))
		}
	}

	eachFacility(data, func(f gjson.Result) {
		staff := field(f, "staff")
		for _, group := range []string{"administrator", "notableStaff"} {
			each(field(staff, group), func(member gjson.Result) {
				if !container(member) {
					c.addValue(set, member)
					return
				}
				if name := field(member, "name"); present(name) {
					c.addValue(set, name)
				}
				if person := field(member, "person"); present(person) {
					c.addValue(set, person)
				}
			})
		}
	})
}

func collectTypes(c Collector, data gjson.Result, set *ValueSet) {
	eachFacility(data, func(f gjson.Result) {
		c.addValue(set, field(field(f, "facilityDetails"), "type"))
	})
}

func collectStatuses(c Collector, data gjson.Result, set *ValueSet) {
	if op := operatorOf(data); op.Exists() {
		c.addValue(set, field(op, "status"))
	}
	eachFacility(data, func(f gjson.Result) {
		c.addValue(set, field(field(f, "operatingPeriod"), "status"))
	})
}

func collectGenders(c Collector, data gjson.Result, set *ValueSet) {
	eachFacility(data, func(f gjson.Result) {
		c.addValue(set, field(field(f, "facilityDetails"), "gender"))
	})
}

var addressSegments = []string{"street", "city", "state", "zip"}

func collectLocations(c Collector, data gjson.Result, set *ValueSet) {
	if op := operatorOf(data); op.Exists() {
		c.addValue(set, field(op, "location"))
		c.addValue(set, field(op, "headquarters"))
	}

	eachFacility(data, func(f gjson.Result) {
		c.addValue(set, field(f, "location"))
		if composite := composeAddress(field(f, "address")); composite != "" {
			set.Add(composite)
		}
	})
}

// composeAddress joins the non-blank scalar address segments with ", ".
func composeAddress(addr gjson.Result) string {
	if !addr.IsObject() {
		return ""
	}
	parts := make([]string, 0, len(addressSegments))
	for _, seg := range addressSegments {
		v := field(addr, seg)
		if Blank(v) || container(v) {
			continue
		}
		text := v.String()
		if v.Type == gjson.Number {
			text = numberText(v)
		} else if v.Type == gjson.True {
			text = "1"
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, ", ")
}

func collectLicensing(c Collector, data gjson.Result, set *ValueSet) {
	eachFacility(data, func(f gjson.Result) {
		c.addValues(set, field(f, "licensing"))
	})
}

func collectMemberships(c Collector, data gjson.Result, set *ValueSet) {
	eachFacility(data, func(f gjson.Result) {
		c.addValues(set, field(f, "memberships"))
	})
}

func collectAccreditations(c Collector, data gjson.Result, set *ValueSet) {
	eachFacility(data, func(f gjson.Result) {
		acc := field(f, "accreditations")
		c.addValues(set, field(acc, "current"))
		c.addValues(set, field(acc, "past"))
	})
}

func collectCertifications(c Collector, data gjson.Result, set *ValueSet) {
	eachFacility(data, func(f gjson.Result) {
		c.addValues(set, field(f, "certifications"))
	})
}

func collectInvestors(c Collector, data gjson.Result, set *ValueSet) {
	if op := operatorOf(data); op.Exists() {
		c.addValues(set, field(op, "investors"))
	}
}

func collectRoles(c Collector, data gjson.Result, set *ValueSet) {
	eachFacility(data, func(f gjson.Result) {
		staff := field(f, "staff")
		for _, group := range []string{"administrator", "notableStaff"} {
			each(field(staff, group), func(member gjson.Result) {
				if role := field(member, "role"); present(role) {
					c.addValue(set, role)
				}
			})
		}
	})
}

func collectOperatingPeriods(c Collector, data gjson.Result, set *ValueSet) {
	if op := operatorOf(data); op.Exists() {
		c.addValue(set, field(op, "operatingPeriod"))
	}
	eachFacility(data, func(f gjson.Result) {
		c.addValue(set, field(field(f, "operatingPeriod"), "yearsOfOperation"))
	})
}
