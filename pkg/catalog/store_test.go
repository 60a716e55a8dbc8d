package catalog_test

import (
	"strings"
	"testing"

	"github.com/aretw0/infobot/pkg/catalog"
	"github.com/aretw0/infobot/pkg/domain"
	"github.com/aretw0/infobot/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() []domain.Record {
	return []domain.Record{
		{Name: "Springfield College", Location: "Springfield, MA", TuitionFee: 30000},
		{Name: "Boston Tech Institute", Location: "Boston, MA", TuitionFee: 42000},
		{Name: "Springfield College of Arts", Location: "Springfield, IL", TuitionFee: 18000},
		{Name: "Harbor University", Location: "boston, MA", TuitionFee: 25000},
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := catalog.New(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyCatalog)

	_, err = catalog.New([]domain.Record{{Name: "  "}})
	assert.ErrorIs(t, err, domain.ErrCatalogLoad)
}

func TestStore_IsolatedFromInput(t *testing.T) {
	records := fixture()
	store, err := catalog.New(records)
	require.NoError(t, err)

	records[0].Name = "Mutated"
	got, ok := store.FindByName("springfield")
	require.True(t, ok)
	assert.Equal(t, "Springfield College", got.Name)

	all := store.All()
	all[1].Name = "Mutated Again"
	assert.Equal(t, "Boston Tech Institute", store.All()[1].Name)
}

func TestStore_FindByName(t *testing.T) {
	store, err := catalog.New(fixture())
	require.NoError(t, err)

	t.Run("First match wins", func(t *testing.T) {
		got, ok := store.FindByName("SPRINGFIELD COLLEGE")
		require.True(t, ok)
		assert.Equal(t, "Springfield College", got.Name)
	})

	t.Run("Every lowercased name resolves to a containing record", func(t *testing.T) {
		for _, r := range fixture() {
			q := strings.ToLower(r.Name)
			got, ok := store.FindByName(q)
			require.True(t, ok)
			assert.Contains(t, strings.ToLower(got.Name), q)
		}
	})

	t.Run("Smallest index among matches", func(t *testing.T) {
		got, ok := store.FindByName("of arts")
		require.True(t, ok)
		assert.Equal(t, "Springfield College of Arts", got.Name)
	})

	t.Run("Not found", func(t *testing.T) {
		_, ok := store.FindByName("xyz123")
		assert.False(t, ok)
	})
}

func TestStore_FindByLocation(t *testing.T) {
	store, err := catalog.New(fixture())
	require.NoError(t, err)

	got := store.FindByLocation("Boston")
	require.Len(t, got, 2)
	assert.Equal(t, "Boston Tech Institute", got[0].Name)
	assert.Equal(t, "Harbor University", got[1].Name)

	assert.Empty(t, store.FindByLocation("Denver"))
	assert.Empty(t, store.FindByLocation("   "))
	assert.Equal(t, 4, store.Len())
}

func TestStore_RecordStoreContract(t *testing.T) {
	records := fixture()
	store, err := catalog.New(records)
	require.NoError(t, err)
	tests.RecordStoreContractTest(t, store, records)
}
