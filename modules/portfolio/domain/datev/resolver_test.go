package datev_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/immodash/immodash/modules/portfolio/domain/datev"
)

var (
	propA = uuid.MustParse("11111111-1111-4111-8111-111111111111")
	propB = uuid.MustParse("22222222-2222-4222-8222-222222222222")
)

func rules() []datev.Rule {
	return []datev.Rule{
		{PropertyID: propA, Direction: datev.DirectionIncome, TaxTier: datev.TaxTierStandard, Category: "rent", Account: "8400"},
		{PropertyID: propA, Direction: datev.DirectionIncome, TaxTier: datev.TaxTierStandard, Category: datev.WildcardCategory, Account: "8499"},
		{PropertyID: propA, Direction: datev.DirectionExpense, TaxTier: datev.TaxTierReduced, Category: "maintenance", Account: "4805"},
	}
}

func TestResolve_ExactMatchWins(t *testing.T) {
	t.Parallel()

	got := datev.Resolve(rules(), propA, datev.DirectionIncome, datev.TaxTierStandard, "rent")
	require.Equal(t, datev.Result{Account: "8400", Matched: true}, got)
}

func TestResolve_FallsBackToWildcardCategory(t *testing.T) {
	t.Parallel()

	got := datev.Resolve(rules(), propA, datev.DirectionIncome, datev.TaxTierStandard, "deposit")
	require.Equal(t, datev.Result{Account: "8499", Matched: true, Wildcard: true}, got)
}

func TestResolve_Unmapped(t *testing.T) {
	t.Parallel()

	// Same category, different property.
	got := datev.Resolve(rules(), propB, datev.DirectionIncome, datev.TaxTierStandard, "rent")
	require.Equal(t, datev.Unmapped, got)

	// Same property, wrong tax tier.
	got = datev.Resolve(rules(), propA, datev.DirectionExpense, datev.TaxTierStandard, "maintenance")
	require.Equal(t, datev.Unmapped, got)
}

func TestResolve_WildcardNeverShadowsExact(t *testing.T) {
	t.Parallel()

	reversed := rules()
	reversed[0], reversed[1] = reversed[1], reversed[0]

	got := datev.Resolve(reversed, propA, datev.DirectionIncome, datev.TaxTierStandard, "rent")
	require.Equal(t, datev.Result{Account: "8400", Matched: true}, got)
}
