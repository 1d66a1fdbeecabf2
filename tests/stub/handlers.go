//go:build unit || e2e

package stub

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const dateLayout = "2006-01-02"

func userJSON(u *User) gin.H {
	return gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"phone":      u.Phone,
		"company":    u.Company,
		"nip":        u.NIP,
		"address":    u.Address,
		"is_active":  true,
		"is_admin":   u.IsAdmin,
		"created_at": u.CreatedAt,
	}
}

func equipmentJSON(e *Equipment) gin.H {
	return gin.H{
		"id":             e.ID,
		"name":           e.Name,
		"category":       e.Category,
		"daily_rate":     e.DailyRate,
		"status":         e.Status,
		"description":    e.Description,
		"weight":         "",
		"fuel_type":      "",
		"power":          "",
		"reach":          "",
		"features":       e.Features,
		"specifications": gin.H{},
		"available":      e.Available,
		"created_at":     e.CreatedAt,
	}
}

func (b *Backend) reservationJSON(r *Reservation) gin.H {
	equipment := b.equipment[r.EquipmentID]
	var customer *User
	for _, u := range b.users {
		if u.ID == r.CustomerID {
			customer = u
			break
		}
	}
	return gin.H{
		"id":              r.ID,
		"equipment_id":    r.EquipmentID,
		"customer_id":     r.CustomerID,
		"start_date":      r.StartDate,
		"end_date":        r.EndDate,
		"total_cost":      r.TotalCost,
		"status":          r.Status,
		"contract_number": r.ContractNumber,
		"notes":           r.Notes,
		"created_at":      r.CreatedAt,
		"equipment":       equipmentJSON(equipment),
		"customer":        userJSON(customer),
	}
}

func (b *Backend) register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Company  string `json:"company"`
		NIP      string `json:"nip"`
		Address  string `json:"address"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Nieprawidłowe dane rejestracji"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.users[req.Email]; exists {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Email już jest zarejestrowany"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Błąd serwera"})
		return
	}
	u := &User{
		ID:           b.nextUser,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Company:      req.Company,
		NIP:          req.NIP,
		Address:      req.Address,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	b.nextUser++
	b.users[req.Email] = u
	c.JSON(http.StatusCreated, userJSON(u))
}

func (b *Backend) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Nieprawidłowe dane logowania"})
		return
	}

	b.mu.Lock()
	u, ok := b.users[req.Email]
	b.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Nieprawidłowy email lub hasło"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": b.mintToken(u),
		"token_type":   "bearer",
		"user":         userJSON(u),
	})
}

func (b *Backend) me(c *gin.Context) {
	c.JSON(http.StatusOK, userJSON(currentUser(c)))
}

func (b *Backend) listEquipment(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	availableOnly := c.Query("available_only") == "true"
	category := c.Query("category")

	out := make([]gin.H, 0, len(b.equipment))
	for id := int64(1); id < b.nextEquip; id++ {
		e, ok := b.equipment[id]
		if !ok {
			continue
		}
		if availableOnly && !e.Available {
			continue
		}
		if category != "" && category != "Wszystkie" && e.Category != category {
			continue
		}
		out = append(out, equipmentJSON(e))
	}
	c.JSON(http.StatusOK, out)
}

func (b *Backend) getEquipment(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	b.mu.Lock()
	e, ok := b.equipment[id]
	b.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Sprzęt nie został znaleziony"})
		return
	}
	c.JSON(http.StatusOK, equipmentJSON(e))
}

type equipmentPayload struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	DailyRate   float64  `json:"daily_rate"`
	Status      *string  `json:"status"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

func (b *Backend) createEquipment(c *gin.Context) {
	var req equipmentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Nieprawidłowe dane sprzętu"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	e := &Equipment{
		ID:          b.nextEquip,
		Name:        req.Name,
		Category:    req.Category,
		DailyRate:   req.DailyRate,
		Status:      "available",
		Description: req.Description,
		Features:    req.Features,
		Available:   true,
		CreatedAt:   time.Now(),
	}
	if req.Status != nil {
		e.Status = *req.Status
		e.Available = *req.Status == "available"
	}
	b.nextEquip++
	b.equipment[e.ID] = e
	c.JSON(http.StatusCreated, equipmentJSON(e))
}

func (b *Backend) updateEquipment(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	var req equipmentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Nieprawidłowe dane sprzętu"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.equipment[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Sprzęt nie został znaleziony"})
		return
	}
	e.Name = req.Name
	e.Category = req.Category
	e.DailyRate = req.DailyRate
	e.Description = req.Description
	e.Features = req.Features
	if req.Status != nil {
		e.Status = *req.Status
		e.Available = *req.Status == "available"
	}
	c.JSON(http.StatusOK, equipmentJSON(e))
}

func (b *Backend) deleteEquipment(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.equipment[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Sprzęt nie został znaleziony"})
		return
	}
	delete(b.equipment, id)
	c.Status(http.StatusNoContent)
}

func (b *Backend) createReservation(c *gin.Context) {
	var req struct {
		EquipmentID int64   `json:"equipment_id"`
		StartDate   string  `json:"start_date"`
		EndDate     string  `json:"end_date"`
		Notes       *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Nieprawidłowe dane rezerwacji"})
		return
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Nieprawidłowa data rozpoczęcia"})
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil || end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Nieprawidłowa data zakończenia"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Replaying the same Idempotency-Key returns the original reservation.
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		if id, seen := b.idempotency[key]; seen {
			c.JSON(http.StatusOK, b.reservationJSON(b.reservations[id]))
			return
		}
	}

	equipment, ok := b.equipment[req.EquipmentID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Sprzęt nie został znaleziony"})
		return
	}
	if !equipment.Available {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Sprzęt jest obecnie niedostępny"})
		return
	}

	days := int(math.Ceil(end.Sub(start).Hours()/24)) + 1
	r := &Reservation{
		ID:             b.nextRes,
		EquipmentID:    req.EquipmentID,
		CustomerID:     currentUser(c).ID,
		StartDate:      start,
		EndDate:        end,
		TotalCost:      equipment.DailyRate * float64(days),
		Status:         "pending",
		ContractNumber: fmt.Sprintf("RES-%d-%03d", time.Now().Year(), b.nextRes),
		Notes:          req.Notes,
		CreatedAt:      time.Now(),
	}
	b.nextRes++
	b.reservations[r.ID] = r
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		b.idempotency[key] = r.ID
	}
	c.JSON(http.StatusCreated, b.reservationJSON(r))
}

func (b *Backend) listReservations(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	current := currentUser(c)
	status := c.Query("status")
	out := make([]gin.H, 0)
	for id := int64(1); id < b.nextRes; id++ {
		r, ok := b.reservations[id]
		if !ok {
			continue
		}
		if !current.IsAdmin && r.CustomerID != current.ID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, b.reservationJSON(r))
	}
	c.JSON(http.StatusOK, out)
}

func (b *Backend) getReservation(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	b.mu.Lock()
	defer b.mu.Unlock()

	r, ok := b.reservations[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Rezerwacja nie została znaleziona"})
		return
	}
	current := currentUser(c)
	if !current.IsAdmin && r.CustomerID != current.ID {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Brak uprawnień"})
		return
	}
	c.JSON(http.StatusOK, b.reservationJSON(r))
}

func (b *Backend) updateReservationStatus(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	status := c.Query("status")
	switch status {
	case "pending", "active", "completed", "cancelled":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Nieprawidłowy status"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.reservations[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Rezerwacja nie została znaleziona"})
		return
	}
	r.Status = status
	c.JSON(http.StatusOK, b.reservationJSON(r))
}

func (b *Backend) statistics(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stats := gin.H{
		"equipment":    gin.H{"total": len(b.equipment), "available": 0, "rented": 0, "maintenance": 0},
		"reservations": gin.H{"total": len(b.reservations), "active": 0, "pending": 0, "completed": 0},
		"customers":    gin.H{"total": len(b.users)},
		"revenue":      gin.H{"monthly": 0.0, "currency": "PLN"},
	}
	available, rented := 0, 0
	for _, e := range b.equipment {
		if e.Available {
			available++
		} else {
			rented++
		}
	}
	stats["equipment"].(gin.H)["available"] = available
	stats["equipment"].(gin.H)["rented"] = rented

	active, pending := 0, 0
	monthly := 0.0
	for _, r := range b.reservations {
		switch r.Status {
		case "active":
			active++
		case "pending":
			pending++
		}
		monthly += r.TotalCost
	}
	stats["reservations"].(gin.H)["active"] = active
	stats["reservations"].(gin.H)["pending"] = pending
	stats["revenue"].(gin.H)["monthly"] = monthly

	c.JSON(http.StatusOK, stats)
}

func (b *Backend) createPaymentIntent(c *gin.Context) {
	var req struct {
		ReservationID int64 `json:"reservation_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Nieprawidłowe dane płatności"})
		return
	}

	b.mu.Lock()
	_, ok := b.reservations[req.ReservationID]
	b.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Rezerwacja nie została znaleziona"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"client_secret": fmt.Sprintf("pi_%d_secret_stub", req.ReservationID),
	})
}

func (b *Backend) processorConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"publishable_key": "pk_test_stub"})
}
