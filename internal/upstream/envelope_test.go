package upstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeListShapes(t *testing.T) {
	shapes := map[string]string{
		"bare array":  `[{"_id":"1","name":"Soups"}]`,
		"named key":   `{"categories":[{"_id":"1","name":"Soups"}]}`,
		"items":       `{"items":[{"_id":"1","name":"Soups"}]}`,
		"docs":        `{"docs":[{"_id":"1","name":"Soups"}]}`,
		"data":        `{"data":[{"_id":"1","name":"Soups"}]}`,
		"nested data": `{"data":{"docs":[{"_id":"1","name":"Soups"}]}}`,
	}
	for name, body := range shapes {
		var wires []categoryWire
		err := decodeList([]byte(body), "categories", &wires)
		require.NoError(t, err, name)
		require.Len(t, wires, 1, name)
		assert.Equal(t, "1", wires[0].value(), name)
		assert.Equal(t, "Soups", wires[0].Name, name)
	}
}

func TestDecodeListRejectsUnknownShape(t *testing.T) {
	var wires []categoryWire
	err := decodeList([]byte(`{"payload":[{"_id":"1"}]}`), "categories", &wires)
	assert.ErrorIs(t, err, ErrBadEnvelope)

	err = decodeList([]byte(`"just a string"`), "categories", &wires)
	assert.ErrorIs(t, err, ErrBadEnvelope)
}

func TestDecodeObject(t *testing.T) {
	var w addressWire
	require.NoError(t, decodeObject([]byte(`{"address":{"_id":"a1","city":"Austin"}}`), "address", &w))
	assert.Equal(t, "a1", w.value())
	assert.Equal(t, "Austin", w.City)

	var bare addressWire
	require.NoError(t, decodeObject([]byte(`{"_id":"a2","city":"Dallas"}`), "address", &bare))
	assert.Equal(t, "a2", bare.value())
}

func TestWireIDPrefersMongoSpelling(t *testing.T) {
	assert.Equal(t, "m", wireID{ID: "plain", MongoID: "m"}.value())
	assert.Equal(t, "plain", wireID{ID: "plain"}.value())
}

func TestNormalizeCartPopulatedMenuItem(t *testing.T) {
	body := `{"cart":{"items":[
		{"menuItem":{"_id":"m1","title":"Burger","description":"beef","price":10.5,"imageUrl":"/b.png"},"qty":2}
	]}}`
	lines, err := NormalizeCart([]byte(body))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "m1", lines[0].MenuItemID)
	assert.Equal(t, "Burger", lines[0].Title)
	assert.Equal(t, 10.5, lines[0].Price)
	assert.Equal(t, 2, lines[0].Qty)
}

func TestNormalizeCartBareIDAndQuantitySpelling(t *testing.T) {
	body := `{"items":[{"menuItem":"m2","title":"Fries","price":3.25,"quantity":3}]}`
	lines, err := NormalizeCart([]byte(body))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "m2", lines[0].MenuItemID)
	assert.Equal(t, "Fries", lines[0].Title)
	assert.Equal(t, 3, lines[0].Qty)
}

func TestNormalizeCartDefaults(t *testing.T) {
	// Missing qty defaults to 1, missing title falls back to a placeholder.
	lines, err := NormalizeCart([]byte(`{"items":[{"menuItem":"m3","price":1}]}`))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Qty)
	assert.Equal(t, "Item", lines[0].Title)
}

func TestNormalizeCartRejectsBadMenuItem(t *testing.T) {
	_, err := NormalizeCart([]byte(`{"items":[{"menuItem":42,"qty":1}]}`))
	assert.ErrorIs(t, err, ErrBadEnvelope)
}

func TestNormalizeCartEmpty(t *testing.T) {
	lines, err := NormalizeCart([]byte(`{"cart":{"items":[]}}`))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestOrderWireToDomain(t *testing.T) {
	w := orderWire{
		wireID:        wireID{MongoID: "o1"},
		Status:        "accepted",
		PaymentStatus: "paid",
		Method:        "delivery",
		Items:         []cartItemWire{{MenuItemID: "m1", Title: "Burger", Price: 10, Qty: intPtr(2)}},
		Subtotal:      20,
		Total:         27.59,
		CreatedAt:     "2026-08-01T12:30:00Z",
	}
	o, err := w.toDomain()
	require.NoError(t, err)
	assert.Equal(t, "o1", o.ID)
	assert.Equal(t, "accepted", string(o.Status))
	require.Len(t, o.Items, 1)
	assert.Equal(t, 2, o.Items[0].Qty)
	assert.Equal(t, 2026, o.CreatedAt.Year())
}

func intPtr(v int) *int { return &v }
