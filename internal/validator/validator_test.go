package validator

import (
	"testing"

	"github.com/aretw0/infobot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(name string) domain.Record {
	return domain.Record{
		Name:         name,
		Location:     "Boston, MA",
		TuitionFee:   1000,
		ContactEmail: "info@example.edu",
		WebsiteURL:   "https://example.edu",
	}
}

func TestValidateCatalogClean(t *testing.T) {
	report := ValidateCatalog([]domain.Record{record("Alpha College"), record("Beta College")})
	assert.Empty(t, report.Issues)
	assert.NoError(t, report.Err(true))
}

func TestValidateCatalogUnreachable(t *testing.T) {
	report := ValidateCatalog([]domain.Record{
		record("St. Mary's College of Arts"),
		record("Mary's College"),
		record("st. mary's college of arts"),
		record("Mary's College of Science"),
	})

	errs := report.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, 2, errs[0].Row)
	assert.Contains(t, errs[0].Reason, `shadowed by row 1 "St. Mary's College of Arts"`)
	assert.Equal(t, 3, errs[1].Row)
	assert.Contains(t, errs[1].Reason, "duplicate of row 1")

	err := report.Err(false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 2 issues")
}

func TestValidateCatalogBlankName(t *testing.T) {
	report := ValidateCatalog([]domain.Record{record("Alpha College"), record("  ")})
	require.Len(t, report.Errors(), 1)
	assert.Equal(t, "blank name", report.Errors()[0].Reason)
}

func TestValidateCatalogWarnings(t *testing.T) {
	rec := record("Alpha College")
	rec.Location = ""
	rec.TuitionFee = 0
	rec.ContactEmail = "admissions"
	rec.WebsiteURL = "alpha.edu"

	report := ValidateCatalog([]domain.Record{rec})
	require.Len(t, report.Issues, 4)
	assert.Empty(t, report.Errors())
	assert.NoError(t, report.Err(false))

	err := report.Err(true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 4 issues")
	assert.Contains(t, err.Error(), `field "Website URL": not an http(s) URL`)
}
