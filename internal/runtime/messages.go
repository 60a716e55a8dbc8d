package runtime

import (
	"fmt"
	"strings"

	"github.com/aretw0/infobot/pkg/domain"
)

// Fixed responses.
const (
	MsgGreeting          = "Hello! I'm happy to assist you with any college information you need. Please mention the college name."
	MsgAskNewCollege     = "Please specify the college name you want to know about."
	MsgAskLocation       = "Please specify the location to list colleges."
	MsgAskComparisonPair = "Please provide the names of the colleges you want to compare, separated by 'and'."
	MsgNeedTwoColleges   = "Please specify exactly two colleges to compare."
	MsgUnknown           = "I'm sorry, I didn't understand that. Please ask again."
)

func formatLocationList(location string, records []domain.Record) string {
	if len(records) == 0 {
		return fmt.Sprintf("No colleges found in %s.", location)
	}
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return fmt.Sprintf("Colleges in %s: %s.", location, strings.Join(names, ", "))
}
