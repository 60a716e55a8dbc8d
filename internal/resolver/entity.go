package resolver

import (
	"fmt"
	"strings"

	"github.com/aretw0/infobot/pkg/domain"
	"github.com/aretw0/infobot/pkg/ports"
)

// FindByName resolves a record by case-insensitive substring match on its name.
// The first record in store order wins.
func FindByName(store ports.RecordStore, query string) (domain.Record, bool) {
	return store.FindByName(query)
}

// Describe renders the full narrative for a record.
func Describe(r domain.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, located in %s, operates under %s ownership and holds %s. ",
		r.Name, r.Location, r.OwnershipType, r.Accreditation)
	fmt.Fprintf(&b, "As a %s, it offers %s. ", r.InstitutionType, r.ProgramsOffered)
	fmt.Fprintf(&b, "Admission criteria include %s. The application process involves %s, with an application fee of %s. ",
		r.AdmissionCriteria, r.ApplicationProcess, r.ApplicationFee)
	fmt.Fprintf(&b, "Scholarship opportunities include %s. Entrance exams: %s. ",
		r.ScholarshipInfo, r.EntranceExams)
	fmt.Fprintf(&b, "The programs span %s and cover %s. ", r.ProgramDuration, r.CurriculumHighlights)
	fmt.Fprintf(&b, "Tuition fees are %s and other fees are %s, with payment plans of %s. ",
		r.TuitionFee, r.OtherFees, r.PaymentPlans)
	fmt.Fprintf(&b, "Campus facilities include %s. Placement statistics show %s, and internship opportunities include %s. ",
		r.CampusFacilities, r.PlacementStatistics, r.InternshipOpportunities)
	fmt.Fprintf(&b, "For more information, contact %s or visit %s.", r.ContactEmail, r.WebsiteURL)
	return b.String()
}
