package domain

import "fmt"

// Pricing constants mirrored from the upstream backend. The figures computed
// here are advisory: the upstream recomputes and reconciles at order placement.
const (
	DeliveryFeeFlat = 4.99
	ServiceFeeRate  = 0.05
	TaxRate         = 0.08
	Discount        = 0
)

// FulfillmentMethod selects how an order reaches the customer.
type FulfillmentMethod string

const (
	MethodDelivery FulfillmentMethod = "delivery"
	MethodPickup   FulfillmentMethod = "pickup"
)

// Valid reports whether the method is one of the two supported fulfillments.
func (m FulfillmentMethod) Valid() bool {
	return m == MethodDelivery || m == MethodPickup
}

// CartLine is one normalized cart entry.
type CartLine struct {
	MenuItemID  string  `json:"menuItemId"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Qty         int     `json:"qty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// Quote is the priced breakdown of a cart for a given fulfillment method.
// All fields carry full floating precision; rounding happens only in Display.
type Quote struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	FeesAndTax  float64 `json:"feesAndTax"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
}

// PriceCart derives the advisory totals for a cart. An empty cart yields an
// all-zero quote. The total is clamped at zero even when the discount exceeds
// the subtotal.
func PriceCart(lines []CartLine, method FulfillmentMethod) Quote {
	if len(lines) == 0 {
		return Quote{}
	}
	var subtotal float64
	for _, l := range lines {
		subtotal += l.Price * float64(l.Qty)
	}
	deliveryFee := 0.0
	if method != MethodPickup {
		deliveryFee = DeliveryFeeFlat
	}
	feesAndTax := subtotal * (ServiceFeeRate + TaxRate)
	total := subtotal + deliveryFee + feesAndTax - Discount
	if total < 0 {
		total = 0
	}
	return Quote{
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		FeesAndTax:  feesAndTax,
		Discount:    Discount,
		Total:       total,
	}
}

// QuoteDisplay is the two-decimal rendering of a quote for the order summary.
type QuoteDisplay struct {
	Subtotal    string `json:"subtotal"`
	DeliveryFee string `json:"deliveryFee"`
	FeesAndTax  string `json:"feesAndTax"`
	Discount    string `json:"discount"`
	Total       string `json:"total"`
}

// Display renders the quote with two-decimal rounding.
func (q Quote) Display() QuoteDisplay {
	return QuoteDisplay{
		Subtotal:    money(q.Subtotal),
		DeliveryFee: money(q.DeliveryFee),
		FeesAndTax:  money(q.FeesAndTax),
		Discount:    money(q.Discount),
		Total:       money(q.Total),
	}
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
