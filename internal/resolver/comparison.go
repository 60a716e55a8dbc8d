package resolver

import (
	"fmt"
	"strings"

	"github.com/aretw0/infobot/pkg/domain"
	"github.com/aretw0/infobot/pkg/ports"
)

// UnknownComparison is returned when either name fails to resolve.
const UnknownComparison = "One or both college names are incorrect."

// Compare resolves both names and declares the record with the strictly lower tuition fee
// the better choice. Equal fees produce an explicit tie. A blank name never resolves.
func Compare(store ports.RecordStore, nameA, nameB string) string {
	if strings.TrimSpace(nameA) == "" || strings.TrimSpace(nameB) == "" {
		return UnknownComparison
	}
	a, okA := store.FindByName(nameA)
	b, okB := store.FindByName(nameB)
	if !okA || !okB {
		return UnknownComparison
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Comparison between %s and %s**:\n\n", a.Name, b.Name)
	writeSummary(&sb, a)
	writeSummary(&sb, b)
	sb.WriteString(verdict(a, b))
	return sb.String()
}

func writeSummary(sb *strings.Builder, r domain.Record) {
	fmt.Fprintf(sb, "**%s**:\n", r.Name)
	fmt.Fprintf(sb, "- Tuition Fees: %s\n", r.TuitionFee)
	fmt.Fprintf(sb, "- Placement Statistics: %s\n\n", r.PlacementStatistics)
}

func verdict(a, b domain.Record) string {
	switch {
	case a.TuitionFee.Less(b.TuitionFee):
		return fmt.Sprintf("Based on the comparison, %s is the better choice due to lower fees.", a.Name)
	case b.TuitionFee.Less(a.TuitionFee):
		return fmt.Sprintf("Based on the comparison, %s is the better choice due to lower fees.", b.Name)
	default:
		return fmt.Sprintf("Based on the comparison, %s and %s have the same tuition fees of %s; neither is cheaper.",
			a.Name, b.Name, a.TuitionFee)
	}
}
