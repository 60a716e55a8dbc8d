package tests

import (
	"strings"
	"testing"

	"github.com/aretw0/infobot/pkg/domain"
	"github.com/aretw0/infobot/pkg/ports"
)

// RecordStoreContractTest is a reusable test suite that verifies if a catalog complies with
// ports.RecordStore. records must be the exact content of store, in order.
func RecordStoreContractTest(t *testing.T, store ports.RecordStore, records []domain.Record) {
	t.Helper()

	t.Run("FindByName_FirstMatch", func(t *testing.T) {
		for _, r := range records {
			q := strings.ToLower(r.Name)
			got, ok := store.FindByName(q)
			if !ok {
				t.Fatalf("expected a match for %q", q)
			}
			want := firstByName(records, q)
			if got.Name != want.Name {
				t.Errorf("expected first match %q for %q, got %q", want.Name, q, got.Name)
			}
		}
	})

	t.Run("FindByName_CaseInsensitive", func(t *testing.T) {
		q := strings.ToUpper(records[0].Name)
		if _, ok := store.FindByName(q); !ok {
			t.Errorf("expected a match for %q", q)
		}
	})

	t.Run("FindByName_NotFound", func(t *testing.T) {
		if _, ok := store.FindByName("\x00no such record\x00"); ok {
			t.Error("expected no match")
		}
	})

	t.Run("FindByLocation_Order", func(t *testing.T) {
		loc := records[0].Location
		got := store.FindByLocation(loc)
		if len(got) == 0 {
			t.Fatalf("expected matches for location %q", loc)
		}
		idx := -1
		for _, g := range got {
			next := indexOf(records, g.Name, idx+1)
			if next <= idx {
				t.Fatalf("results out of store order at %q", g.Name)
			}
			idx = next
		}
	})
}

func firstByName(records []domain.Record, q string) domain.Record {
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), q) {
			return r
		}
	}
	return domain.Record{}
}

func indexOf(records []domain.Record, name string, from int) int {
	for i := from; i < len(records); i++ {
		if records[i].Name == name {
			return i
		}
	}
	return -1
}
