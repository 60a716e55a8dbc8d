package resolver_test

import (
	"strings"
	"testing"

	"github.com/aretw0/infobot/internal/resolver"
	"github.com/aretw0/infobot/pkg/catalog"
	"github.com/aretw0/infobot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alpha() domain.Record {
	return domain.Record{
		Name:                    "Alpha College",
		Location:                "Boston, MA",
		OwnershipType:           "Private",
		Accreditation:           "NECHE",
		InstitutionType:         "Liberal Arts College",
		AdmissionCriteria:       "High school diploma",
		ApplicationProcess:      "Online form",
		ApplicationFee:          50,
		ScholarshipInfo:         "Merit scholarships",
		EntranceExams:           "SAT",
		ProgramsOffered:         "BA, BSc",
		ProgramDuration:         "4 years",
		CurriculumHighlights:    "Seminars",
		TuitionFee:              30000,
		OtherFees:               1500,
		PaymentPlans:            "Monthly",
		CampusFacilities:        "Library, Gym",
		PlacementStatistics:     "92% placed",
		InternshipOpportunities: "Local startups",
		ContactEmail:            "info@alpha.edu",
		WebsiteURL:              "https://alpha.edu",
	}
}

func newStore(t *testing.T, records ...domain.Record) *catalog.Store {
	t.Helper()
	store, err := catalog.New(records)
	require.NoError(t, err)
	return store
}

func TestDescribe_InterpolatesEveryField(t *testing.T) {
	r := alpha()
	got := resolver.Describe(r)

	for _, want := range []string{
		r.Name, r.Location, r.OwnershipType, r.Accreditation, r.InstitutionType,
		r.AdmissionCriteria, r.ApplicationProcess, "$50", r.ScholarshipInfo, r.EntranceExams,
		r.ProgramsOffered, r.ProgramDuration, r.CurriculumHighlights, "$30000", "$1500",
		r.PaymentPlans, r.CampusFacilities, r.PlacementStatistics, r.InternshipOpportunities,
		r.ContactEmail, r.WebsiteURL,
	} {
		assert.Contains(t, got, want)
	}
	assert.Equal(t, got, resolver.Describe(r), "must be deterministic")
}

func TestAnswer(t *testing.T) {
	r := alpha()

	tests := []struct {
		utterance string
		want      string
	}{
		{"what is the tuition fees", "The tuition fees amount to $30000."},
		{"Where is the LOCATION?", "The location of Alpha College is in Boston, MA."},
		{"application fees please", "The application fee is $50."},
		{"tell me about the application process", "The application process involves Online form."},
		{"email", "For inquiries, contact info@alpha.edu."},
		{"website", "More information is available at https://alpha.edu."},
		{"type of institution", "It is a Liberal Arts College."},
		{"how is the weather", resolver.UnknownAttribute},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.Answer(r, tt.utterance))
		})
	}
}

func TestAnswer_FirstKeywordInTableOrderWins(t *testing.T) {
	r := alpha()
	// "tuition fees" precedes "email" in the table regardless of utterance order.
	got := resolver.Answer(r, "email me the tuition fees")
	assert.Equal(t, "The tuition fees amount to $30000.", got)

	// "location" is the first entry.
	got = resolver.Answer(r, "website and location")
	assert.Equal(t, "The location of Alpha College is in Boston, MA.", got)
}

func TestKeywords_Order(t *testing.T) {
	kw := resolver.Keywords()
	require.Len(t, kw, 20)
	assert.Equal(t, "location", kw[0])
	assert.Equal(t, "website", kw[len(kw)-1])
}

func TestCompare(t *testing.T) {
	a := alpha()
	b := alpha()
	b.Name = "Beta College"
	b.TuitionFee = 20000
	b.PlacementStatistics = "85% placed"
	store := newStore(t, a, b)

	t.Run("Lower fee wins", func(t *testing.T) {
		got := resolver.Compare(store, "Alpha College", "Beta College")
		assert.Contains(t, got, "Beta College is the better choice")
		assert.Contains(t, got, "- Tuition Fees: $30000")
		assert.Contains(t, got, "- Placement Statistics: 85% placed")
	})

	t.Run("Winner is symmetric", func(t *testing.T) {
		ab := resolver.Compare(store, "alpha", "beta")
		ba := resolver.Compare(store, "beta", "alpha")
		assert.True(t, strings.HasSuffix(ab, "Beta College is the better choice due to lower fees."))
		assert.True(t, strings.HasSuffix(ba, "Beta College is the better choice due to lower fees."))
	})

	t.Run("Unknown name", func(t *testing.T) {
		assert.Equal(t, resolver.UnknownComparison, resolver.Compare(store, "alpha", "gamma"))
		assert.Equal(t, resolver.UnknownComparison, resolver.Compare(store, "gamma", "beta"))
	})

	t.Run("Blank name", func(t *testing.T) {
		assert.Equal(t, resolver.UnknownComparison, resolver.Compare(store, "alpha", ""))
		assert.Equal(t, resolver.UnknownComparison, resolver.Compare(store, "  ", "beta"))
	})

	t.Run("Tie", func(t *testing.T) {
		c := alpha()
		c.Name = "Gamma College"
		tied := newStore(t, a, c)
		got := resolver.Compare(tied, "alpha", "gamma")
		assert.Contains(t, got, "have the same tuition fees of $30000")
		assert.NotContains(t, got, "better choice")
	})
}

func TestFindByName(t *testing.T) {
	store := newStore(t, alpha())
	got, ok := resolver.FindByName(store, "ALPHA")
	require.True(t, ok)
	assert.Equal(t, "Alpha College", got.Name)
}
