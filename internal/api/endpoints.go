package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// Request payloads. Dates cross the wire as yyyy-mm-dd, matching the
// backend's date fields.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	NIP      string `json:"nip"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

type CreateReservationRequest struct {
	EquipmentID int64   `json:"equipment_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Notes       *string `json:"notes,omitempty"`
}

type EquipmentPayload struct {
	Name           string            `json:"name"`
	Category       string            `json:"category"`
	DailyRate      float64           `json:"daily_rate"`
	Status         *string           `json:"status,omitempty"`
	Description    string            `json:"description"`
	Weight         string            `json:"weight"`
	FuelType       string            `json:"fuel_type"`
	Power          string            `json:"power"`
	Reach          string            `json:"reach"`
	ImageURL       *string           `json:"image_url,omitempty"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
}

type CreatePaymentIntentRequest struct {
	ReservationID int64             `json:"reservation_id"`
	PaymentMethod string            `json:"payment_method"`
	ReturnURL     string            `json:"return_url"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

type EquipmentQuery struct {
	Category      string
	Status        string
	AvailableOnly bool
}

func (q EquipmentQuery) encode() string {
	values := url.Values{}
	if q.Category != "" {
		values.Set("category", q.Category)
	}
	if q.Status != "" {
		values.Set("status", q.Status)
	}
	if q.AvailableOnly {
		values.Set("available_only", "true")
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// ---- auth ----

func (c *Client) Login(ctx context.Context, req LoginRequest) (*TokenView, error) {
	var out TokenView
	if err := c.Post(ctx, "/api/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*UserView, error) {
	var out UserView
	if err := c.Post(ctx, "/api/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*UserView, error) {
	var out UserView
	if err := c.Get(ctx, "/api/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---- equipment ----

func (c *Client) ListEquipment(ctx context.Context, query EquipmentQuery) ([]EquipmentView, error) {
	var out []EquipmentView
	if err := c.Get(ctx, "/api/equipment"+query.encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetEquipment(ctx context.Context, id int64) (*EquipmentView, error) {
	var out EquipmentView
	if err := c.Get(ctx, fmt.Sprintf("/api/equipment/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateEquipment(ctx context.Context, payload EquipmentPayload) (*EquipmentView, error) {
	var out EquipmentView
	if err := c.Post(ctx, "/api/equipment", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEquipment(ctx context.Context, id int64, payload EquipmentPayload) (*EquipmentView, error) {
	var out EquipmentView
	if err := c.Put(ctx, fmt.Sprintf("/api/equipment/%d", id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEquipment(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/api/equipment/%d", id))
}

// ---- reservations ----

// CreateReservation submits a reservation draft. The backend is the sole
// authority for the total and the contract number; the idempotency key makes
// a re-click of the submit control safe.
func (c *Client) CreateReservation(ctx context.Context, req CreateReservationRequest, idempotencyKey uuid.UUID) (*ReservationView, error) {
	var out ReservationView
	err := c.do(ctx, "POST", "/api/reservations", req, &out,
		header{name: "Idempotency-Key", value: idempotencyKey.String()})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListReservations(ctx context.Context, status string) ([]ReservationView, error) {
	path := "/api/reservations"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out []ReservationView
	if err := c.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetReservation(ctx context.Context, id int64) (*ReservationView, error) {
	var out ReservationView
	if err := c.Get(ctx, fmt.Sprintf("/api/reservations/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateReservationStatus(ctx context.Context, id int64, status string) error {
	path := fmt.Sprintf("/api/reservations/%d/status?status=%s", id, url.QueryEscape(status))
	return c.Put(ctx, path, nil, nil)
}

// ---- statistics ----

func (c *Client) Statistics(ctx context.Context) (*StatisticsView, error) {
	var out StatisticsView
	if err := c.Get(ctx, "/api/statistics", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---- payments ----

func (c *Client) CreatePaymentIntent(ctx context.Context, req CreatePaymentIntentRequest) (*PaymentIntentView, error) {
	var out PaymentIntentView
	if err := c.Post(ctx, "/api/payments/create-intent", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PaymentProcessorPublicConfig(ctx context.Context) (*PaymentProcessorConfig, error) {
	var out PaymentProcessorConfig
	if err := c.Get(ctx, "/api/stripe/config", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
