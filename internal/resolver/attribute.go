package resolver

import (
	"fmt"
	"strings"

	"github.com/aretw0/infobot/pkg/domain"
)

// UnknownAttribute is returned when no attribute keyword matches.
const UnknownAttribute = "I'm sorry, I didn't understand that. Please ask about a specific aspect of the college."

type attribute struct {
	keyword string
	answer  func(domain.Record) string
}

// attributes is evaluated in order; the first keyword found in the utterance wins.
var attributes = []attribute{
	{"location", func(r domain.Record) string {
		return fmt.Sprintf("The location of %s is in %s.", r.Name, r.Location)
	}},
	{"ownership", func(r domain.Record) string {
		return fmt.Sprintf("The college is under %s ownership.", r.OwnershipType)
	}},
	{"accreditation", func(r domain.Record) string {
		return fmt.Sprintf("The college is accredited by %s.", r.Accreditation)
	}},
	{"type of institution", func(r domain.Record) string {
		return fmt.Sprintf("It is a %s.", r.InstitutionType)
	}},
	{"admission criteria", func(r domain.Record) string {
		return fmt.Sprintf("The admission criteria include %s.", r.AdmissionCriteria)
	}},
	{"application process", func(r domain.Record) string {
		return fmt.Sprintf("The application process involves %s.", r.ApplicationProcess)
	}},
	{"application fees", func(r domain.Record) string {
		return fmt.Sprintf("The application fee is %s.", r.ApplicationFee)
	}},
	{"scholarship opportunities", func(r domain.Record) string {
		return fmt.Sprintf("The available scholarship opportunities include %s.", r.ScholarshipInfo)
	}},
	{"entrance exams", func(r domain.Record) string {
		return fmt.Sprintf("The required entrance exams are %s.", r.EntranceExams)
	}},
	{"programs offered", func(r domain.Record) string {
		return fmt.Sprintf("The programs offered are %s.", r.ProgramsOffered)
	}},
	{"duration of programs", func(r domain.Record) string {
		return fmt.Sprintf("The duration of the programs is %s.", r.ProgramDuration)
	}},
	{"curriculum highlights", func(r domain.Record) string {
		return fmt.Sprintf("The curriculum highlights include %s.", r.CurriculumHighlights)
	}},
	{"tuition fees", func(r domain.Record) string {
		return fmt.Sprintf("The tuition fees amount to %s.", r.TuitionFee)
	}},
	{"other fees", func(r domain.Record) string {
		return fmt.Sprintf("Other fees include %s.", r.OtherFees)
	}},
	{"payment plans", func(r domain.Record) string {
		return fmt.Sprintf("The payment plans available are %s.", r.PaymentPlans)
	}},
	{"campus facilities", func(r domain.Record) string {
		return fmt.Sprintf("The campus facilities include %s.", r.CampusFacilities)
	}},
	{"placement statistics", func(r domain.Record) string {
		return fmt.Sprintf("The placement statistics show %s.", r.PlacementStatistics)
	}},
	{"internship opportunities", func(r domain.Record) string {
		return fmt.Sprintf("The internship opportunities available are %s.", r.InternshipOpportunities)
	}},
	{"email", func(r domain.Record) string {
		return fmt.Sprintf("For inquiries, contact %s.", r.ContactEmail)
	}},
	{"website", func(r domain.Record) string {
		return fmt.Sprintf("More information is available at %s.", r.WebsiteURL)
	}},
}

// Answer returns the sentence for the first attribute keyword contained in utterance.
func Answer(r domain.Record, utterance string) string {
	q := strings.ToLower(utterance)
	for _, a := range attributes {
		if strings.Contains(q, a.keyword) {
			return a.answer(r)
		}
	}
	return UnknownAttribute
}

// Keywords lists the recognized attribute keywords in evaluation order.
func Keywords() []string {
	out := make([]string, len(attributes))
	for i, a := range attributes {
		out[i] = a.keyword
	}
	return out
}
