package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceCartDeliveryScenario(t *testing.T) {
	lines := []CartLine{
		{MenuItemID: "a", Title: "Burger", Price: 10, Qty: 2},
		{MenuItemID: "b", Title: "Fries", Price: 5, Qty: 1},
	}
	q := PriceCart(lines, MethodDelivery)
	assert.InDelta(t, 25.00, q.Subtotal, 1e-9)
	assert.Equal(t, DeliveryFeeFlat, q.DeliveryFee)
	assert.InDelta(t, 3.25, q.FeesAndTax, 1e-9) // 25 * 0.13
	assert.InDelta(t, 33.24, q.Total, 1e-9)

	d := q.Display()
	assert.Equal(t, "25.00", d.Subtotal)
	assert.Equal(t, "4.99", d.DeliveryFee)
	assert.Equal(t, "3.25", d.FeesAndTax)
	assert.Equal(t, "33.24", d.Total)
}

func TestPriceCartPickupScenario(t *testing.T) {
	lines := []CartLine{
		{MenuItemID: "a", Price: 10, Qty: 2},
		{MenuItemID: "b", Price: 5, Qty: 1},
	}
	q := PriceCart(lines, MethodPickup)
	assert.Zero(t, q.DeliveryFee)
	assert.InDelta(t, 28.25, q.Total, 1e-9)
	assert.Equal(t, "28.25", q.Display().Total)
}

func TestPriceCartEmptyCart(t *testing.T) {
	for _, method := range []FulfillmentMethod{MethodDelivery, MethodPickup} {
		q := PriceCart(nil, method)
		assert.Zero(t, q.Subtotal)
		assert.Zero(t, q.DeliveryFee)
		assert.Zero(t, q.FeesAndTax)
		assert.Zero(t, q.Total)
	}
}

func TestPriceCartSubtotalIsSumOfLines(t *testing.T) {
	lines := []CartLine{
		{Price: 3.5, Qty: 3},
		{Price: 0, Qty: 10},
		{Price: 12.25, Qty: 1},
	}
	q := PriceCart(lines, MethodPickup)
	assert.InDelta(t, 3.5*3+12.25, q.Subtotal, 1e-9)
}

func TestPriceCartFeeIndependentOfContents(t *testing.T) {
	small := []CartLine{{Price: 0.01, Qty: 1}}
	big := []CartLine{{Price: 500, Qty: 9}}
	assert.Equal(t, DeliveryFeeFlat, PriceCart(small, MethodDelivery).DeliveryFee)
	assert.Equal(t, DeliveryFeeFlat, PriceCart(big, MethodDelivery).DeliveryFee)
	assert.Zero(t, PriceCart(big, MethodPickup).DeliveryFee)
}

func TestPriceCartTotalNeverNegative(t *testing.T) {
	// Lines with zero price plus zero delivery fee cannot go below zero even
	// if a future discount exceeded the subtotal.
	q := PriceCart([]CartLine{{Price: 0, Qty: 5}}, MethodPickup)
	assert.GreaterOrEqual(t, q.Total, 0.0)
}

func TestFulfillmentMethodValid(t *testing.T) {
	assert.True(t, MethodDelivery.Valid())
	assert.True(t, MethodPickup.Valid())
	assert.False(t, FulfillmentMethod("drone").Valid())
}
