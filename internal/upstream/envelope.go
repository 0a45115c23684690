package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"

	"cloudkitchen/internal/domain"
)

// The upstream wraps list payloads inconsistently: a bare array, or an object
// keyed by the collection name, "items", "docs", or "data", sometimes two
// levels deep (e.g. {"data":{"docs":[...]}}). decodeList tries the named key
// first and the generic keys after, and fails hard with ErrBadEnvelope when
// nothing matches.
func decodeList(data []byte, key string, out any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	keys := []string{key, "items", "docs", "data"}
	for _, k := range keys {
		raw, ok := obj[k]
		if !ok {
			continue
		}
		inner := bytes.TrimSpace(raw)
		if len(inner) > 0 && inner[0] == '[' {
			return json.Unmarshal(inner, out)
		}
		// One nested envelope level, e.g. {"data":{"docs":[...]}}.
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(inner, &nested); err != nil {
			continue
		}
		for _, nk := range keys {
			nraw, ok := nested[nk]
			if !ok {
				continue
			}
			if n := bytes.TrimSpace(nraw); len(n) > 0 && n[0] == '[' {
				return json.Unmarshal(n, out)
			}
		}
	}
	return fmt.Errorf("%w: no list under %q, items, docs or data", ErrBadEnvelope, key)
}

// decodeObject unwraps {key:{...}} or accepts the bare object.
func decodeObject(data []byte, key string, out any) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(data), &obj); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	if raw, ok := obj[key]; ok {
		if b := bytes.TrimSpace(raw); len(b) > 0 && b[0] == '{' {
			return json.Unmarshal(b, out)
		}
	}
	return json.Unmarshal(data, out)
}

// wireID carries the two id spellings the upstream uses interchangeably.
type wireID struct {
	ID      string `json:"id"`
	MongoID string `json:"_id"`
}

func (w wireID) value() string {
	if w.MongoID != "" {
		return w.MongoID
	}
	return w.ID
}

type userWire struct {
	wireID
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func (w userWire) toDomain() domain.Principal {
	role := domain.Role(w.Role)
	if !role.Valid() {
		role = domain.RoleUser
	}
	return domain.Principal{
		ID:        w.value(),
		FirstName: w.FirstName,
		LastName:  w.LastName,
		Email:     w.Email,
		Role:      role,
	}
}

type menuItemWire struct {
	wireID
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category"`
	IsAvailable *bool   `json:"isAvailable"`
}

func (w menuItemWire) toDomain() domain.MenuItem {
	available := true
	if w.IsAvailable != nil {
		available = *w.IsAvailable
	}
	return domain.MenuItem{
		ID:          w.value(),
		Title:       w.Title,
		Description: w.Description,
		Price:       w.Price,
		ImageURL:    w.ImageURL,
		Category:    w.Category,
		IsAvailable: available,
	}
}

type categoryWire struct {
	wireID
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Order    int    `json:"order"`
	IsActive bool   `json:"isActive"`
}

func (w categoryWire) toDomain() domain.Category {
	return domain.Category{
		ID:       w.value(),
		Name:     w.Name,
		Slug:     w.Slug,
		Order:    w.Order,
		IsActive: w.IsActive,
	}
}

type addressWire struct {
	wireID
	Label      string `json:"label"`
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	IsDefault  bool   `json:"isDefault"`
}

func (w addressWire) toDomain() domain.Address {
	return domain.Address{
		ID:         w.value(),
		Label:      w.Label,
		FullName:   w.FullName,
		Phone:      w.Phone,
		Line1:      w.Line1,
		Line2:      w.Line2,
		City:       w.City,
		State:      w.State,
		PostalCode: w.PostalCode,
		IsDefault:  w.IsDefault,
	}
}

type orderWire struct {
	wireID
	Status        string         `json:"status"`
	PaymentStatus string         `json:"paymentStatus"`
	Method        string         `json:"method"`
	Address       *addressWire   `json:"address"`
	Items         []cartItemWire `json:"items"`
	Subtotal      float64        `json:"subtotal"`
	DeliveryFee   float64        `json:"deliveryFee"`
	ServiceFee    float64        `json:"serviceFee"`
	Tax           float64        `json:"tax"`
	Discount      float64        `json:"discount"`
	Total         float64        `json:"total"`
	CreatedAt     string         `json:"createdAt"`
}

func (w orderWire) toDomain() (domain.Order, error) {
	items := make([]domain.CartLine, 0, len(w.Items))
	for _, it := range w.Items {
		line, err := it.toLine()
		if err != nil {
			return domain.Order{}, err
		}
		items = append(items, line)
	}
	o := domain.Order{
		ID:            w.value(),
		Status:        domain.Status(w.Status),
		PaymentStatus: domain.PaymentStatus(w.PaymentStatus),
		Method:        domain.FulfillmentMethod(w.Method),
		Items:         items,
		Subtotal:      w.Subtotal,
		DeliveryFee:   w.DeliveryFee,
		ServiceFee:    w.ServiceFee,
		Tax:           w.Tax,
		Discount:      w.Discount,
		Total:         w.Total,
	}
	if w.Address != nil {
		addr := w.Address.toDomain()
		o.Address = &addr
	}
	if w.CreatedAt != "" {
		if t, err := parseUpstreamTime(w.CreatedAt); err == nil {
			o.CreatedAt = t
		}
	}
	return o, nil
}
