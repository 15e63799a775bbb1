package search

import (
	"testing"

	"facility-registry/internal/domain/facility"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRecord = `{
  "operator": {
    "name": "Acme Group",
    "currentName": "Acme Holdings",
    "otherNames": ["Acme", {"name": "ACME Youth"}, {"label": "Acme Labelled"}],
    "parentCompanies": [{"value": "Parent Co"}],
    "previousNames": ["Old Acme"],
    "ceo": "Jane Roe",
    "keyStaff": {
      "ceo": {"name": "Jane Roe"},
      "founders": ["John Doe", {"name": "Mary Major"}],
      "keyExecutives": [{"name": "Exec One", "role": "CFO"}],
      "boardMembers": []
    },
    "status": "Active",
    "location": "Provo, UT",
    "headquarters": {"city": "Salt Lake City"},
    "operatingPeriod": "1998-present",
    "investors": [{"name": "Capital Partners"}, "Angel Fund"]
  },
  "facilities": [
    {
      "identification": {"name": "North Ranch", "currentName": "North Ranch Academy", "otherNames": ["NRA"], "currentOperator": "Acme Holdings"},
      "otherOperators": [{"name": "Prior Operator"}],
      "facilityDetails": {"type": "Residential", "gender": "Mixed"},
      "location": "Provo",
      "address": {"street": "1 Main St", "city": "Provo", "state": "UT", "zip": 84601},
      "operatingPeriod": {"status": "Closed", "yearsOfOperation": "2001-2012"},
      "licensing": [{"name": "State License"}, "DHS"],
      "memberships": [{"label": "NATSAP"}],
      "accreditations": {"current": ["Joint Commission"], "past": [{"value": "CARF"}]},
      "certifications": ["Cert A"],
      "staff": {
        "administrator": [{"name": "Admin Person", "role": "Director"}],
        "notableStaff": [{"person": "Therapist P", "role": "Therapist"}, "Loose Name"]
      }
    },
    "not an object",
    {
      "identification": {"name": "South Ranch"},
      "facilityDetails": {"type": "residential"},
      "address": {"street": "", "city": "Ogden", "state": "UT"},
      "operatingPeriod": {"yearsOfOperation": 12}
    }
  ]
}`

func collect(t *testing.T, c Collector, cat facility.Category, raw string) []string {
	t.Helper()
	data, ok := NormalizePayload(raw)
	require.True(t, ok)
	set := NewValueSet()
	require.True(t, c.Collect(cat, data, set))
	return set.Values()
}

func TestCollect_Categories(t *testing.T) {
	tests := map[facility.Category][]string{
		facility.CategoryOperator: {
			"Acme Group", "Acme Holdings", "Acme", "ACME Youth", "Acme Labelled",
			"Parent Co", "Old Acme", "Prior Operator",
		},
		facility.CategoryFacility: {"North Ranch", "North Ranch Academy", "NRA", "South Ranch"},
		facility.CategoryHuman: {
			"Jane Roe", "John Doe", "Mary Major", "Exec One",
			"Admin Person", "Therapist P", "Loose Name",
		},
		facility.CategoryType:   {"Residential"},
		facility.CategoryStatus: {"Active", "Closed"},
		facility.CategoryGender: {"Mixed"},
		facility.CategoryLocation: {
			"Provo, UT", "Salt Lake City", "Provo", "1 Main St, Provo, UT, 84601", "Ogden, UT",
		},
		facility.CategoryLicensing:       {"State License", "DHS"},
		facility.CategoryMembership:      {"NATSAP"},
		facility.CategoryAccreditation:   {"Joint Commission", "CARF"},
		facility.CategoryCertification:   {"Cert A"},
		facility.CategoryInvestor:        {"Capital Partners", "Angel Fund"},
		facility.CategoryRole:            {"Director", "Therapist"},
		facility.CategoryOperatingPeriod: {"1998-present", "2001-2012", "12"},
	}
	require.Len(t, tests, len(facility.Categories))

	for cat, want := range tests {
		t.Run(string(cat), func(t *testing.T) {
			assert.Equal(t, want, collect(t, Collector{}, cat, sampleRecord))
		})
	}
}

func TestCollect_UnknownCategory(t *testing.T) {
	data, ok := NormalizePayload(sampleRecord)
	require.True(t, ok)
	set := NewValueSet()
	assert.False(t, Collector{}.Collect(facility.Category("widgets"), data, set))
	assert.Equal(t, 0, set.Len())
}

func TestCollect_MissingIntermediates(t *testing.T) {
	raws := []string{
		`{"operator":"just a string"}`,
		`{"operator":[],"facilities":"nope"}`,
		`{"facilities":[null, 1, {"identification":"x","staff":"y","accreditations":[]}]}`,
		`{"facilities":[{"licensing":"DHS","memberships":{"a":null}}]}`,
	}
	for _, raw := range raws {
		for _, cat := range facility.Categories {
			assert.Empty(t, collect(t, Collector{}, cat, raw), "%s %s", cat, raw)
		}
	}
}

func TestCollect_ValueCoercion(t *testing.T) {
	raw := `{"operator":{"otherNames":[true,false,null,0,"0",3.5,1e3,42," ","Real"]}}`
	assert.Equal(t, []string{"1", "0", "3.5", "1000", "42", "Real"}, collect(t, Collector{}, facility.CategoryOperator, raw))
}

func TestCollect_ObjectValuesAddEveryNameKey(t *testing.T) {
	raw := `{"operator":{"name":{"name":"N","title":"T","text":"","label":"L"}}}`
	assert.Equal(t, []string{"N", "L", "T"}, collect(t, Collector{}, facility.CategoryOperator, raw))
}

func TestCollect_EntryKeyPriority(t *testing.T) {
	raw := `{"operator":{"otherNames":[{"label":"L1","value":"V1"},{"name":null,"value":"V2"},{"name":"","value":"V3"}]}}`
	assert.Equal(t, []string{"V1", "V2"}, collect(t, Collector{}, facility.CategoryOperator, raw))
}

func TestCollect_LenientFallbackAndStrict(t *testing.T) {
	raw := `{"operator":{"otherNames":[{"first":"Ann","last":"Lee","meta":{"deep":"skip"}}]}}`
	assert.Equal(t, []string{"Ann", "Lee"}, collect(t, Collector{}, facility.CategoryOperator, raw))
	assert.Empty(t, collect(t, Collector{Strict: true}, facility.CategoryOperator, raw))
}

func TestCollect_RoleNeedsObjectEntries(t *testing.T) {
	raw := `{"facilities":[{"staff":{"administrator":["Director"],"notableStaff":[{"role":"Nurse"},{"role":null}]}}]}`
	assert.Equal(t, []string{"Nurse"}, collect(t, Collector{}, facility.CategoryRole, raw))
}

func TestCollect_SharedAccumulatorKeepsFirstCasing(t *testing.T) {
	set := NewValueSet()
	for _, raw := range []string{
		`{"operator":{"name":"Acme Group"},"facilities":[]}`,
		`{"data":{"operator":{"name":"acme group"},"facilities":[]}}`,
	} {
		data, ok := NormalizePayload(raw)
		require.True(t, ok)
		Collector{}.Collect(facility.CategoryOperator, data, set)
	}
	assert.Equal(t, []string{"Acme Group"}, set.Values())
}
