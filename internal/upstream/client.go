// Package upstream is the HTTP client for the CloudKitchen REST API. The
// gateway owns no durable state; every data operation here is a pass-through
// to the upstream, with a bearer token attached and loose response envelopes
// normalized into the domain types.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cloudkitchen/internal/domain"
)

// Client talks to the upstream REST API at a fixed base path.
type Client struct {
	base string
	http *http.Client
}

// New builds a client for the given base URL (e.g. http://localhost:5000/api).
func New(base string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// do issues one request and decodes the result into out (when non-nil).
// Non-2xx responses become *Error carrying the upstream message. There are no
// retries anywhere; a failure is terminal for the operation.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream: encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("upstream: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("upstream: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return &Error{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}
	if out == nil {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw = data
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	return nil
}

// errorMessage pulls the human message out of an upstream error body.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		return body.Error
	}
	return ""
}

func parseUpstreamTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// ---- auth ----

// SignupRequest mirrors the upstream signup payload.
type SignupRequest struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.do(ctx, http.MethodPost, "/users/signup", "", req, nil)
}

// Login exchanges credentials for the upstream bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/users/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: login response without token", ErrBadEnvelope)
	}
	return resp.Token, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/users/forgot-password", "", map[string]string{"email": email}, nil)
}

func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	return c.do(ctx, http.MethodPost, "/users/verify-otp", "", map[string]string{"email": email, "otp": otp}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/users/reset-password", "", map[string]string{
		"email":       email,
		"otp":         otp,
		"newPassword": newPassword,
	}, nil)
}

func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/users/verify-email", "", map[string]string{"token": token}, nil)
}

func (c *Client) ResendVerification(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/users/resend-verification-public", "", map[string]string{"email": email}, nil)
}

// ---- session ----

// Me resolves the current principal. The response is either a bare user
// object or wrapped as {"user": {...}}.
func (c *Client) Me(ctx context.Context, token string) (domain.Principal, error) {
	var raw []byte
	if err := c.do(ctx, http.MethodGet, "/users/me", token, nil, &raw); err != nil {
		return domain.Principal{}, err
	}
	var w userWire
	if err := decodeObject(raw, "user", &w); err != nil {
		return domain.Principal{}, err
	}
	if w.Email == "" && w.value() == "" {
		return domain.Principal{}, fmt.Errorf("%w: me response without user", ErrBadEnvelope)
	}
	return w.toDomain(), nil
}

func (c *Client) UpdateMe(ctx context.Context, token string, patch map[string]any) (domain.Principal, error) {
	var raw []byte
	if err := c.do(ctx, http.MethodPatch, "/users/me", token, patch, &raw); err != nil {
		return domain.Principal{}, err
	}
	var w userWire
	if err := decodeObject(raw, "user", &w); err != nil {
		return domain.Principal{}, err
	}
	return w.toDomain(), nil
}

// ---- catalog ----

func (c *Client) Menus(ctx context.Context, token string) ([]domain.MenuItem, error) {
	var raw []byte
	if err := c.do(ctx, http.MethodGet, "/menus?limit=200", token, nil, &raw); err != nil {
		return nil, err
	}
	var wires []menuItemWire
	if err := decodeList(raw, "menus", &wires); err != nil {
		return nil, err
	}
	items := make([]domain.MenuItem, len(wires))
	for i, w := range wires {
		items[i] = w.toDomain()
	}
	return items, nil
}

// MenuItemInput is the create/update payload for a menu item.
type MenuItemInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Category    string  `json:"category,omitempty"`
	IsAvailable bool    `json:"isAvailable"`
}

func (c *Client) CreateMenu(ctx context.Context, token string, in MenuItemInput) error {
	return c.do(ctx, http.MethodPost, "/menus", token, in, nil)
}

func (c *Client) UpdateMenu(ctx context.Context, token, id string, patch map[string]any) error {
	return c.do(ctx, http.MethodPatch, "/menus/"+url.PathEscape(id), token, patch, nil)
}

func (c *Client) DeleteMenu(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/menus/"+url.PathEscape(id), token, nil, nil)
}

func (c *Client) Categories(ctx context.Context, token string) ([]domain.Category, error) {
	var raw []byte
	if err := c.do(ctx, http.MethodGet, "/menu-categories", token, nil, &raw); err != nil {
		return nil, err
	}
	var wires []categoryWire
	if err := decodeList(raw, "categories", &wires); err != nil {
		return nil, err
	}
	cats := make([]domain.Category, len(wires))
	for i, w := range wires {
		cats[i] = w.toDomain()
	}
	return domain.SortByOrder(cats), nil
}

func (c *Client) CreateCategory(ctx context.Context, token, name string, isActive bool) error {
	return c.do(ctx, http.MethodPost, "/menu-categories", token, map[string]any{
		"name":     name,
		"isActive": isActive,
	}, nil)
}

func (c *Client) UpdateCategory(ctx context.Context, token, id string, patch map[string]any) error {
	return c.do(ctx, http.MethodPut, "/menu-categories/"+url.PathEscape(id), token, patch, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/menu-categories/"+url.PathEscape(id), token, nil, nil)
}

// ReorderCategories submits the full ordering array. The upstream applies it
// last-write-wins; there is no partial merge.
func (c *Client) ReorderCategories(ctx context.Context, token string, ordering []domain.CategoryOrder) error {
	type entry struct {
		ID    string `json:"_id"`
		Order int    `json:"order"`
	}
	entries := make([]entry, len(ordering))
	for i, o := range ordering {
		entries[i] = entry{ID: o.ID, Order: o.Order}
	}
	return c.do(ctx, http.MethodPost, "/menu-categories/reorder", token, map[string]any{"order": entries}, nil)
}

// ---- cart ----

func (c *Client) Cart(ctx context.Context, token string) ([]domain.CartLine, error) {
	var raw []byte
	if err := c.do(ctx, http.MethodGet, "/cart", token, nil, &raw); err != nil {
		return nil, err
	}
	return NormalizeCart(raw)
}

func (c *Client) AddCartItem(ctx context.Context, token, menuItemID string, qty int) error {
	return c.do(ctx, http.MethodPost, "/cart/items", token, map[string]any{
		"menuItemId": menuItemID,
		"qty":        qty,
	}, nil)
}

func (c *Client) UpdateCartItem(ctx context.Context, token, menuItemID string, qty int) error {
	return c.do(ctx, http.MethodPatch, "/cart/items/"+url.PathEscape(menuItemID), token, map[string]any{"qty": qty}, nil)
}

func (c *Client) RemoveCartItem(ctx context.Context, token, menuItemID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/items/"+url.PathEscape(menuItemID), token, nil, nil)
}

// ---- addresses ----

func (c *Client) Addresses(ctx context.Context, token string) ([]domain.Address, error) {
	var raw []byte
	if err := c.do(ctx, http.MethodGet, "/addresses", token, nil, &raw); err != nil {
		return nil, err
	}
	var wires []addressWire
	if err := decodeList(raw, "addresses", &wires); err != nil {
		return nil, err
	}
	out := make([]domain.Address, len(wires))
	for i, w := range wires {
		out[i] = w.toDomain()
	}
	return out, nil
}

func (c *Client) CreateAddress(ctx context.Context, token string, a domain.Address) (domain.Address, error) {
	var raw []byte
	if err := c.do(ctx, http.MethodPost, "/addresses", token, a, &raw); err != nil {
		return domain.Address{}, err
	}
	var w addressWire
	if err := decodeObject(raw, "address", &w); err != nil {
		return domain.Address{}, err
	}
	return w.toDomain(), nil
}

func (c *Client) UpdateAddress(ctx context.Context, token, id string, a domain.Address) error {
	return c.do(ctx, http.MethodPut, "/addresses/"+url.PathEscape(id), token, a, nil)
}

func (c *Client) DeleteAddress(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/addresses/"+url.PathEscape(id), token, nil, nil)
}

func (c *Client) SetDefaultAddress(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodPatch, "/addresses/"+url.PathEscape(id)+"/default", token, nil, nil)
}

// ---- checkout & orders ----

// Checkout places the order. addressID is required upstream for delivery.
func (c *Client) Checkout(ctx context.Context, token string, method domain.FulfillmentMethod, addressID string) (domain.Order, error) {
	body := map[string]any{"method": method}
	if addressID != "" {
		body["addressId"] = addressID
	}
	var raw []byte
	if err := c.do(ctx, http.MethodPost, "/checkout", token, body, &raw); err != nil {
		return domain.Order{}, err
	}
	var w orderWire
	if err := decodeObject(raw, "order", &w); err != nil {
		return domain.Order{}, err
	}
	return w.toDomain()
}

// OrdersQuery filters the order listing.
type OrdersQuery struct {
	Status string
	From   time.Time
	To     time.Time
	Page   int
	Limit  int
}

func (q OrdersQuery) encode() string {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if !q.From.IsZero() {
		v.Set("from", q.From.UTC().Format(time.RFC3339))
	}
	if !q.To.IsZero() {
		v.Set("to", q.To.UTC().Format(time.RFC3339))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// Orders lists orders with their total count for pagination.
func (c *Client) Orders(ctx context.Context, token string, q OrdersQuery) ([]domain.Order, int, error) {
	var raw []byte
	if err := c.do(ctx, http.MethodGet, "/orders"+q.encode(), token, nil, &raw); err != nil {
		return nil, 0, err
	}
	var wires []orderWire
	if err := decodeList(raw, "orders", &wires); err != nil {
		return nil, 0, err
	}
	orders := make([]domain.Order, 0, len(wires))
	for _, w := range wires {
		o, err := w.toDomain()
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	var meta struct {
		Total int `json:"total"`
	}
	_ = json.Unmarshal(raw, &meta)
	if meta.Total == 0 {
		meta.Total = len(orders)
	}
	return orders, meta.Total, nil
}

func (c *Client) OrderByID(ctx context.Context, token, id string) (domain.Order, error) {
	var raw []byte
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), token, nil, &raw); err != nil {
		return domain.Order{}, err
	}
	var w orderWire
	if err := decodeObject(raw, "order", &w); err != nil {
		return domain.Order{}, err
	}
	return w.toDomain()
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token, id string, to domain.Status) error {
	return c.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(id)+"/status", token, map[string]any{"to": to}, nil)
}

func (c *Client) CancelOrder(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(id)+"/cancel", token, nil, nil)
}

// ---- staff management ----

func (c *Client) AllUsers(ctx context.Context, token string) ([]domain.Principal, error) {
	var raw []byte
	if err := c.do(ctx, http.MethodGet, "/users/allusers", token, nil, &raw); err != nil {
		return nil, err
	}
	var wires []userWire
	if err := decodeList(raw, "users", &wires); err != nil {
		return nil, err
	}
	users := make([]domain.Principal, len(wires))
	for i, w := range wires {
		users[i] = w.toDomain()
	}
	return users, nil
}

func (c *Client) SearchUsers(ctx context.Context, token, query string) ([]domain.Principal, error) {
	var raw []byte
	if err := c.do(ctx, http.MethodGet, "/users/search?q="+url.QueryEscape(query), token, nil, &raw); err != nil {
		return nil, err
	}
	var wires []userWire
	if err := decodeList(raw, "users", &wires); err != nil {
		return nil, err
	}
	users := make([]domain.Principal, len(wires))
	for i, w := range wires {
		users[i] = w.toDomain()
	}
	return users, nil
}

func (c *Client) PromoteAdmin(ctx context.Context, token, userID string) error {
	return c.do(ctx, http.MethodPost, "/users/admins", token, map[string]string{"userId": userID}, nil)
}

func (c *Client) DemoteAdmin(ctx context.Context, token, userID string) error {
	return c.do(ctx, http.MethodDelete, "/users/admins/"+url.PathEscape(userID), token, nil, nil)
}
