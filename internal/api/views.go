package api

import "time"

// Read models for the backend's JSON contract. Field names follow the wire
// format exactly; the client never mutates them.

type UserView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	NIP       string    `json:"nip"`
	Address   string    `json:"address"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type TokenView struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        UserView `json:"user"`
}

type EquipmentView struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Category       string            `json:"category"`
	DailyRate      float64           `json:"daily_rate"`
	Status         string            `json:"status"`
	Description    string            `json:"description"`
	Weight         string            `json:"weight"`
	FuelType       string            `json:"fuel_type"`
	Power          string            `json:"power"`
	Reach          string            `json:"reach"`
	ImageURL       *string           `json:"image_url,omitempty"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
	Available      bool              `json:"available"`
	CreatedAt      time.Time         `json:"created_at"`
}

type ReservationView struct {
	ID             int64         `json:"id"`
	EquipmentID    int64         `json:"equipment_id"`
	CustomerID     int64         `json:"customer_id"`
	StartDate      time.Time     `json:"start_date"`
	EndDate        time.Time     `json:"end_date"`
	TotalCost      float64       `json:"total_cost"`
	Status         string        `json:"status"`
	ContractNumber string        `json:"contract_number"`
	Notes          *string       `json:"notes,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	Equipment      EquipmentView `json:"equipment"`
	Customer       UserView      `json:"customer"`
}

type StatisticsView struct {
	Equipment struct {
		Total       int `json:"total"`
		Available   int `json:"available"`
		Rented      int `json:"rented"`
		Maintenance int `json:"maintenance"`
	} `json:"equipment"`
	Reservations struct {
		Total     int `json:"total"`
		Active    int `json:"active"`
		Pending   int `json:"pending"`
		Completed int `json:"completed"`
	} `json:"reservations"`
	Customers struct {
		Total int `json:"total"`
	} `json:"customers"`
	Revenue struct {
		Monthly  float64 `json:"monthly"`
		Currency string  `json:"currency"`
	} `json:"revenue"`
}

type PaymentIntentView struct {
	ClientSecret string `json:"client_secret"`
}

type PaymentProcessorConfig struct {
	PublishableKey string `json:"publishable_key"`
}
