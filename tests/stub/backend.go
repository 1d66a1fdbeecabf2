//go:build unit || e2e

// Package stub hosts an in-process rendition of the rental backend so the
// client stack can be exercised end to end without the real service. It
// mirrors the REST contract, including the Polish error details the real
// backend sends.
package stub

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	signingKey = "stub-signing-key"
	tokenTTL   = time.Hour
)

type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	Company      string
	NIP          string
	Address      string
	PasswordHash []byte
	IsAdmin      bool
	CreatedAt    time.Time
}

type Equipment struct {
	ID          int64
	Name        string
	Category    string
	DailyRate   float64
	Status      string
	Description string
	Features    []string
	Available   bool
	CreatedAt   time.Time
}

type Reservation struct {
	ID             int64
	EquipmentID    int64
	CustomerID     int64
	StartDate      time.Time
	EndDate        time.Time
	TotalCost      float64
	Status         string
	ContractNumber string
	Notes          *string
	CreatedAt      time.Time
}

// Backend is one stub instance. All state is in memory and guarded by a
// single mutex; the client under test is the only traffic source.
type Backend struct {
	mu           sync.Mutex
	server       *httptest.Server
	users        map[string]*User
	equipment    map[int64]*Equipment
	reservations map[int64]*Reservation
	idempotency  map[string]int64
	nextUser     int64
	nextEquip    int64
	nextRes      int64
}

func New() *Backend {
	gin.SetMode(gin.TestMode)

	b := &Backend{
		users:        make(map[string]*User),
		equipment:    make(map[int64]*Equipment),
		reservations: make(map[int64]*Reservation),
		idempotency:  make(map[string]int64),
		nextUser:     1,
		nextRes:      1,
	}
	b.seed()

	engine := gin.New()
	engine.Use(cors.New(cors.Config{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{"Authorization", "Content-Type", "Idempotency-Key"},
	}))
	b.routes(engine)

	b.server = httptest.NewServer(engine)
	return b
}

func (b *Backend) URL() string { return b.server.URL }
func (b *Backend) Close()      { b.server.Close() }

// AddUser registers an account directly, bypassing the HTTP surface.
func (b *Backend) AddUser(email, password string, isAdmin bool) *User {
	b.mu.Lock()
	defer b.mu.Unlock()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	u := &User{
		ID:           b.nextUser,
		Name:         "Konto testowe",
		Email:        email,
		Phone:        "+48 600 000 000",
		Company:      "Testowa Sp. z o.o.",
		Address:      "ul. Testowa 1, Warszawa",
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
	}
	b.nextUser++
	b.users[email] = u
	return u
}

// UserByEmail exposes stored accounts for assertions.
func (b *Backend) UserByEmail(email string) (*User, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[email]
	return u, ok
}

// ReservationCount exposes how many reservations exist, for halt assertions.
func (b *Backend) ReservationCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.reservations)
}

func (b *Backend) seed() {
	for i, e := range []Equipment{
		{Name: "Koparka gąsienicowa CAT 320", Category: "Maszyny ziemne", DailyRate: 850, Status: "available", Description: "Koparka do robót ziemnych", Features: []string{"GPS", "Klimatyzacja"}, Available: true},
		{Name: "Żuraw wieżowy Liebherr 85 EC", Category: "Żurawie", DailyRate: 2200, Status: "rented", Description: "Żuraw do montażu konstrukcji", Available: false},
		{Name: "Rusztowanie ramowe 100m²", Category: "Rusztowania", DailyRate: 120, Status: "available", Description: "System ramowy elewacyjny", Available: true},
	} {
		e := e
		e.ID = int64(i + 1)
		e.CreatedAt = time.Now()
		b.equipment[e.ID] = &e
	}
	b.nextEquip = int64(len(b.equipment)) + 1
}

func (b *Backend) routes(engine *gin.Engine) {
	apiGroup := engine.Group("/api")

	apiGroup.POST("/auth/register", b.register)
	apiGroup.POST("/auth/login", b.login)
	apiGroup.GET("/auth/me", b.authenticated(b.me))

	apiGroup.GET("/equipment", b.listEquipment)
	apiGroup.GET("/equipment/:id", b.getEquipment)
	apiGroup.POST("/equipment", b.authenticated(b.adminOnly(b.createEquipment)))
	apiGroup.PUT("/equipment/:id", b.authenticated(b.adminOnly(b.updateEquipment)))
	apiGroup.DELETE("/equipment/:id", b.authenticated(b.adminOnly(b.deleteEquipment)))

	apiGroup.POST("/reservations", b.authenticated(b.createReservation))
	apiGroup.GET("/reservations", b.authenticated(b.listReservations))
	apiGroup.GET("/reservations/:id", b.authenticated(b.getReservation))
	apiGroup.PUT("/reservations/:id/status", b.authenticated(b.adminOnly(b.updateReservationStatus)))

	apiGroup.GET("/statistics", b.authenticated(b.adminOnly(b.statistics)))

	apiGroup.POST("/payments/create-intent", b.authenticated(b.createPaymentIntent))
	apiGroup.GET("/stripe/config", b.processorConfig)
}

// ---- auth plumbing ----

func (b *Backend) mintToken(u *User) string {
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(u.ID, 10),
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingKey))
	if err != nil {
		panic(err)
	}
	return token
}

func (b *Backend) authenticated(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Brak autoryzacji"})
			return
		}
		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(signingKey), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Token wygasł lub jest nieprawidłowy"})
			return
		}
		sub, err := token.Claims.GetSubject()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Token wygasł lub jest nieprawidłowy"})
			return
		}
		id, _ := strconv.ParseInt(sub, 10, 64)

		b.mu.Lock()
		var current *User
		for _, u := range b.users {
			if u.ID == id {
				current = u
				break
			}
		}
		b.mu.Unlock()
		if current == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Token wygasł lub jest nieprawidłowy"})
			return
		}
		c.Set("user", current)
		next(c)
	}
}

func (b *Backend) adminOnly(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentUser(c).IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Brak uprawnień"})
			return
		}
		next(c)
	}
}

func currentUser(c *gin.Context) *User {
	return c.MustGet("user").(*User)
}
