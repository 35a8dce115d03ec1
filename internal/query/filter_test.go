package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackfolio/trackfolio-be/internal/models"
)

func fixtureAssets() []models.Asset {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.Asset{
		{
			ID: "a1", UserID: "u1", Name: "House", Type: models.AssetRealEstate,
			Value: 500000, Description: "Family home",
			CreatedAt: base, UpdatedAt: base.Add(1 * time.Hour),
		},
		{
			ID: "a2", UserID: "u1", Name: "BTC", Type: models.AssetCrypto,
			Value: 30000, Description: "Cold wallet",
			CreatedAt: base.Add(1 * time.Hour), UpdatedAt: base.Add(3 * time.Hour),
		},
		{
			ID: "a3", UserID: "u1", Name: "Tesla", Type: models.AssetVehicle,
			Value: 30000, Description: "Daily driver",
			CreatedAt: base.Add(2 * time.Hour), UpdatedAt: base.Add(2 * time.Hour),
		},
	}
}

func names(assets []models.Asset) []string {
	out := make([]string, len(assets))
	for i, a := range assets {
		out[i] = a.Name
	}
	return out
}

func TestFilterAndSort_NoSpecDefaultsToUpdatedAtDesc(t *testing.T) {
	got := FilterAndSort(fixtureAssets(), Spec{})
	assert.Equal(t, []string{"BTC", "Tesla", "House"}, names(got))
}

func TestFilterAndSort_SearchMatchesNameCaseInsensitive(t *testing.T) {
	got := FilterAndSort(fixtureAssets(), Spec{Search: "bt"})
	require.Len(t, got, 1)
	assert.Equal(t, "BTC", got[0].Name)
}

func TestFilterAndSort_SearchMatchesDescription(t *testing.T) {
	got := FilterAndSort(fixtureAssets(), Spec{Search: "WALLET"})
	require.Len(t, got, 1)
	assert.Equal(t, "BTC", got[0].Name)
}

func TestFilterAndSort_SearchNoMatch(t *testing.T) {
	got := FilterAndSort(fixtureAssets(), Spec{Search: "yacht"})
	assert.Empty(t, got)
}

func TestFilterAndSort_TypeFilter(t *testing.T) {
	got := FilterAndSort(fixtureAssets(), Spec{Type: models.AssetVehicle})
	require.Len(t, got, 1)
	assert.Equal(t, "Tesla", got[0].Name)
}

func TestFilterAndSort_ValueBoundsAreInclusive(t *testing.T) {
	min := 30000.0
	max := 30000.0
	got := FilterAndSort(fixtureAssets(), Spec{MinValue: &min, MaxValue: &max})
	assert.Equal(t, []string{"BTC", "Tesla"}, names(got))
}

func TestFilterAndSort_MinValue(t *testing.T) {
	min := 40000.0
	got := FilterAndSort(fixtureAssets(), Spec{MinValue: &min})
	require.Len(t, got, 1)
	assert.Equal(t, "House", got[0].Name)
}

func TestFilterAndSort_PredicatesCombineWithAnd(t *testing.T) {
	min := 20000.0
	got := FilterAndSort(fixtureAssets(), Spec{Search: "t", Type: models.AssetCrypto, MinValue: &min})
	require.Len(t, got, 1)
	assert.Equal(t, "BTC", got[0].Name)
}

func TestFilterAndSort_SortByValueAsc(t *testing.T) {
	got := FilterAndSort(fixtureAssets(), Spec{SortBy: SortByValue})
	assert.Equal(t, []string{"BTC", "Tesla", "House"}, names(got))
}

func TestFilterAndSort_SortByValueDesc(t *testing.T) {
	got := FilterAndSort(fixtureAssets(), Spec{SortBy: SortByValue, SortDesc: true})
	assert.Equal(t, []string{"House", "BTC", "Tesla"}, names(got))
}

func TestFilterAndSort_SortByName(t *testing.T) {
	got := FilterAndSort(fixtureAssets(), Spec{SortBy: SortByName})
	assert.Equal(t, []string{"BTC", "House", "Tesla"}, names(got))
}

func TestFilterAndSort_SortByCreatedAt(t *testing.T) {
	got := FilterAndSort(fixtureAssets(), Spec{SortBy: SortByCreatedAt, SortDesc: true})
	assert.Equal(t, []string{"Tesla", "BTC", "House"}, names(got))
}

func TestFilterAndSort_TieBreakKeepsInputOrder(t *testing.T) {
	// BTC and Tesla share the same value; BTC comes first in the input.
	got := FilterAndSort(fixtureAssets(), Spec{SortBy: SortByValue})
	assert.Equal(t, []string{"BTC", "Tesla"}, names(got)[:2])

	reversed := []models.Asset{fixtureAssets()[2], fixtureAssets()[1], fixtureAssets()[0]}
	got = FilterAndSort(reversed, Spec{SortBy: SortByValue})
	assert.Equal(t, []string{"Tesla", "BTC"}, names(got)[:2])
}

func TestFilterAndSort_DoesNotMutateInput(t *testing.T) {
	input := fixtureAssets()
	want := fixtureAssets()

	FilterAndSort(input, Spec{SortBy: SortByValue, SortDesc: true})
	assert.Equal(t, want, input)
}

func TestFilterAndSort_Idempotent(t *testing.T) {
	min := 10000.0
	spec := Spec{Search: "t", MinValue: &min, SortBy: SortByName}

	first := FilterAndSort(fixtureAssets(), spec)
	second := FilterAndSort(fixtureAssets(), spec)
	assert.Equal(t, first, second)
}

func TestFilterAndSort_UnknownSortFieldFallsBackToDefault(t *testing.T) {
	got := FilterAndSort(fixtureAssets(), Spec{SortBy: "owner"})
	assert.Equal(t, []string{"BTC", "Tesla", "House"}, names(got))
}

func TestFilterAndSort_EmptyInput(t *testing.T) {
	got := FilterAndSort(nil, Spec{Search: "x"})
	assert.Empty(t, got)
}
