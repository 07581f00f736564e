package pricing

import (
	"testing"

	"github.com/laskalegacy/storefront-backend/internal/catalog"
	"github.com/laskalegacy/storefront-backend/pkg/enums"
	pkgerrors "github.com/laskalegacy/storefront-backend/pkg/errors"
	"github.com/stretchr/testify/require"
)

func testCalculator(t *testing.T) *Calculator {
	t.Helper()
	provider, err := catalog.New(
		[]catalog.Product{
			{Name: "Stock Bridle", Price: 650, PudoSize: enums.PudoSizeM},
			{Name: "Paracord Reins", Price: 450, PudoSize: enums.PudoSizeS},
			{Name: "Saddle Stand", Price: 500, PudoSize: enums.PudoSizeL},
			{Name: "Bridle Bag", Price: 250, PudoSize: enums.PudoSizeXS},
		},
		catalog.ShippingTable{
			"locker-locker": {
				enums.PudoSizeXS: 50,
				enums.PudoSizeS:  60,
				enums.PudoSizeM:  80,
				enums.PudoSizeL:  120,
			},
			"locker-door": {
				enums.PudoSizeM: 100,
			},
		},
	)
	require.NoError(t, err)
	return NewCalculator(provider)
}

func TestQuoteStockBridleScenario(t *testing.T) {
	t.Parallel()

	quote, err := testCalculator(t).Quote([]Item{{Name: "Stock Bridle", Qty: 1}}, "locker-locker")
	require.NoError(t, err)

	require.Len(t, quote.Lines, 1)
	require.Equal(t, 650.0, quote.ProductTotal)
	require.Equal(t, 80.0, quote.ShippingCost)
	require.Equal(t, 730.0, quote.GrandTotal)
	require.Equal(t, enums.PudoSizeM, quote.LargestSize)
}

func TestQuoteLargestSizeIgnoresOrder(t *testing.T) {
	t.Parallel()

	calc := testCalculator(t)
	forward, err := calc.Quote([]Item{
		{Name: "Paracord Reins", Qty: 1},
		{Name: "Saddle Stand", Qty: 1},
	}, "locker-locker")
	require.NoError(t, err)

	reversed, err := calc.Quote([]Item{
		{Name: "Saddle Stand", Qty: 1},
		{Name: "Paracord Reins", Qty: 1},
	}, "locker-locker")
	require.NoError(t, err)

	require.Equal(t, enums.PudoSizeL, forward.LargestSize)
	require.Equal(t, enums.PudoSizeL, reversed.LargestSize)
	require.Equal(t, forward.ShippingCost, reversed.ShippingCost)
	require.Equal(t, forward.GrandTotal, reversed.GrandTotal)
}

func TestQuoteShippingMonotonicInSize(t *testing.T) {
	t.Parallel()

	calc := testCalculator(t)
	small, err := calc.Quote([]Item{{Name: "Paracord Reins", Qty: 1}}, "locker-locker")
	require.NoError(t, err)

	withLarger, err := calc.Quote([]Item{
		{Name: "Paracord Reins", Qty: 1},
		{Name: "Saddle Stand", Qty: 1},
	}, "locker-locker")
	require.NoError(t, err)

	require.GreaterOrEqual(t, withLarger.ShippingCost, small.ShippingCost)
}

func TestQuoteDeterministic(t *testing.T) {
	t.Parallel()

	calc := testCalculator(t)
	items := []Item{
		{Name: "Stock Bridle", Qty: 2},
		{Name: "Bridle Bag", Qty: 3},
	}

	first, err := calc.Quote(items, "locker-locker")
	require.NoError(t, err)
	second, err := calc.Quote(items, "locker-locker")
	require.NoError(t, err)

	require.Equal(t, first.ProductTotal, second.ProductTotal)
	require.Equal(t, first.ShippingCost, second.ShippingCost)
	require.Equal(t, first.GrandTotal, second.GrandTotal)
	require.Equal(t, first.ProductTotal+first.ShippingCost, first.GrandTotal)
}

func TestQuoteUnknownProduct(t *testing.T) {
	t.Parallel()

	_, err := testCalculator(t).Quote([]Item{{Name: "Ghost Halter", Qty: 1}}, "locker-locker")
	require.Error(t, err)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeProductNotFound))

	typed := pkgerrors.As(err)
	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Ghost Halter", details["name"])
}

func TestQuoteUnknownRoute(t *testing.T) {
	t.Parallel()

	_, err := testCalculator(t).Quote([]Item{{Name: "Stock Bridle", Qty: 1}}, "door-door")
	require.Error(t, err)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInvalidRoute))
}

func TestQuoteSizeMissingUnderRoute(t *testing.T) {
	t.Parallel()

	// locker-door only defines a cost for M; a large cart has no entry.
	_, err := testCalculator(t).Quote([]Item{{Name: "Saddle Stand", Qty: 1}}, "locker-door")
	require.Error(t, err)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInvalidRoute))
}

func TestQuoteFiltersNonPositiveQuantities(t *testing.T) {
	t.Parallel()

	quote, err := testCalculator(t).Quote([]Item{
		{Name: "Stock Bridle", Qty: 1},
		{Name: "Saddle Stand", Qty: 0},
	}, "locker-locker")
	require.NoError(t, err)

	require.Len(t, quote.Lines, 1)
	require.Equal(t, "Stock Bridle", quote.Lines[0].Name)
	require.Equal(t, enums.PudoSizeM, quote.LargestSize)
}

func TestQuoteRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	calc := testCalculator(t)

	_, err := calc.Quote(nil, "locker-locker")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = calc.Quote([]Item{{Name: "Stock Bridle", Qty: 0}}, "locker-locker")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestQuoteDecimalExactness(t *testing.T) {
	t.Parallel()

	provider, err := catalog.New(
		[]catalog.Product{{Name: "Keyring", Price: 10.10, PudoSize: enums.PudoSizeXS}},
		catalog.ShippingTable{"locker-locker": {enums.PudoSizeXS: 0.30}},
	)
	require.NoError(t, err)

	quote, err := NewCalculator(provider).Quote([]Item{{Name: "Keyring", Qty: 3}}, "locker-locker")
	require.NoError(t, err)

	require.Equal(t, 30.30, quote.ProductTotal)
	require.Equal(t, 30.60, quote.GrandTotal)
}
