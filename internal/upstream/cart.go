package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"

	"cloudkitchen/internal/domain"
)

// The cart payload nests either a populated menu-item object or a bare id
// string under "menuItem", and spells quantity as "qty" or "quantity".
// NormalizeCart flattens both shapes into CartLine; anything else is a
// contract violation.
type cartEnvelope struct {
	Cart  *cartBody      `json:"cart"`
	Items []cartItemWire `json:"items"`
}

type cartBody struct {
	Items []cartItemWire `json:"items"`
}

type cartItemWire struct {
	MenuItem    json.RawMessage `json:"menuItem"`
	MenuItemID  string          `json:"menuItemId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Qty         *int            `json:"qty"`
	Quantity    *int            `json:"quantity"`
}

func (it cartItemWire) toLine() (domain.CartLine, error) {
	line := domain.CartLine{
		MenuItemID:  it.MenuItemID,
		Title:       it.Title,
		Description: it.Description,
		Price:       it.Price,
		ImageURL:    it.ImageURL,
		Qty:         1,
	}
	if it.Qty != nil {
		line.Qty = *it.Qty
	} else if it.Quantity != nil {
		line.Qty = *it.Quantity
	}
	if raw := bytes.TrimSpace(it.MenuItem); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		switch raw[0] {
		case '{':
			var m menuItemWire
			if err := json.Unmarshal(raw, &m); err != nil {
				return domain.CartLine{}, fmt.Errorf("%w: bad menuItem object: %v", ErrBadEnvelope, err)
			}
			line.MenuItemID = m.value()
			line.Title = m.Title
			line.Description = m.Description
			line.Price = m.Price
			line.ImageURL = m.ImageURL
		case '"':
			var id string
			if err := json.Unmarshal(raw, &id); err != nil {
				return domain.CartLine{}, fmt.Errorf("%w: bad menuItem id: %v", ErrBadEnvelope, err)
			}
			line.MenuItemID = id
		default:
			return domain.CartLine{}, fmt.Errorf("%w: menuItem is neither object nor id", ErrBadEnvelope)
		}
	}
	if line.Title == "" {
		line.Title = "Item"
	}
	return line, nil
}

// NormalizeCart decodes an upstream cart response into flat cart lines.
func NormalizeCart(data []byte) ([]domain.CartLine, error) {
	var env cartEnvelope
	if err := json.Unmarshal(bytes.TrimSpace(data), &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	items := env.Items
	if env.Cart != nil {
		items = env.Cart.Items
	}
	lines := make([]domain.CartLine, 0, len(items))
	for _, it := range items {
		line, err := it.toLine()
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
