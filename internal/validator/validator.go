package validator

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aretw0/infobot/pkg/domain"
)

// Severity grades a catalog issue.
type Severity string

const (
	// SeverityError marks a record the bot can never answer about.
	SeverityError Severity = "error"
	// SeverityWarning marks data that answers badly but still resolves.
	SeverityWarning Severity = "warning"
)

// Issue is one finding about one record.
type Issue struct {
	Row      int // 1-based position in the catalog
	Name     string
	Field    string
	Reason   string
	Severity Severity
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s: row %d (%q) field %q: %s", i.Severity, i.Row, i.Name, i.Field, i.Reason)
}

// Report collects every issue found in a catalog.
type Report struct {
	Issues []Issue
}

// Errors returns only the error-level issues.
func (r *Report) Errors() []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			out = append(out, i)
		}
	}
	return out
}

// Err aggregates the issues at or above the given strictness into one error.
// Warnings count only when strict is set.
func (r *Report) Err(strict bool) error {
	failing := r.Errors()
	if strict {
		failing = r.Issues
	}
	if len(failing) == 0 {
		return nil
	}
	if len(failing) == 1 {
		return failing[0]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "found %d issues:", len(failing))
	for _, i := range failing {
		b.WriteString("\n- ")
		b.WriteString(i.Error())
	}
	return fmt.Errorf("%s", b.String())
}

func (r *Report) add(row int, rec domain.Record, field, reason string, sev Severity) {
	r.Issues = append(r.Issues, Issue{Row: row, Name: rec.Name, Field: field, Reason: reason, Severity: sev})
}

// ValidateCatalog checks records in store order.
// Name lookups return the first record whose name contains the query, so a
// record whose whole name appears inside an earlier record's name can never
// be reached and is reported as an error.
func ValidateCatalog(records []domain.Record) *Report {
	report := &Report{}
	folded := make([]string, len(records))

	for i, rec := range records {
		row := i + 1
		name := strings.ToLower(rec.Name)
		folded[i] = name

		if strings.TrimSpace(rec.Name) == "" {
			report.add(row, rec, domain.ColumnName, "blank name", SeverityError)
			continue
		}
		for j := 0; j < i; j++ {
			if folded[j] == "" || !strings.Contains(folded[j], name) {
				continue
			}
			reason := fmt.Sprintf("unreachable: shadowed by row %d %q", j+1, records[j].Name)
			if folded[j] == name {
				reason = fmt.Sprintf("unreachable: duplicate of row %d", j+1)
			}
			report.add(row, rec, domain.ColumnName, reason, SeverityError)
			break
		}

		if strings.TrimSpace(rec.Location) == "" {
			report.add(row, rec, domain.ColumnLocation, "blank location; never listed by location", SeverityWarning)
		}
		if rec.TuitionFee <= 0 {
			report.add(row, rec, domain.ColumnTuitionFee, "no tuition amount; comparisons treat it as free", SeverityWarning)
		}
		if rec.ContactEmail != "" && !strings.Contains(rec.ContactEmail, "@") {
			report.add(row, rec, "Email Address", "not an e-mail address", SeverityWarning)
		}
		if rec.WebsiteURL != "" && !isWebURL(rec.WebsiteURL) {
			report.add(row, rec, "Website URL", "not an http(s) URL", SeverityWarning)
		}
	}
	return report
}

func isWebURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
