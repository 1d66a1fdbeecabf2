// Package checkout turns a completed wizard draft into a backend
// reservation, creating and signing in a guest account first when no
// session exists.
package checkout

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"spellbudex/internal/api"
	"spellbudex/internal/pkg/clock"
	"spellbudex/internal/pkg/errs"
	"spellbudex/internal/session"
	"spellbudex/internal/wizard"
)

const dateLayout = "2006-01-02"

// ErrStartDateInPast rejects drafts scheduled before today.
var ErrStartDateInPast = errs.New("start date in the past")

// Gateway is the slice of the backend client the submission pipeline uses.
type Gateway interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.UserView, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenView, error)
	CreateReservation(ctx context.Context, req api.CreateReservationRequest, idempotencyKey uuid.UUID) (*api.ReservationView, error)
}

// SessionStore is the slice of the session store the pipeline reads and
// writes.
type SessionStore interface {
	Read() session.Session
	Save(sess session.Session) error
}

type Submitter struct {
	gateway  Gateway
	sessions SessionStore
	clock    clock.Clock
	log      *slog.Logger
}

func NewSubmitter(gateway Gateway, sessions SessionStore, clk clock.Clock, log *slog.Logger) *Submitter {
	return &Submitter{gateway: gateway, sessions: sessions, clock: clk, log: log}
}

// Submit runs the pipeline: ensure an authenticated session (registering a
// guest account when needed), then create the reservation. Steps run
// strictly in order; a failed step halts the pipeline and nothing done so
// far is rolled back: a guest account created before a failed reservation
// call simply remains.
func (s *Submitter) Submit(ctx context.Context, draft wizard.Draft) (*api.ReservationView, error) {
	if draft.EquipmentID == 0 {
		return nil, wizard.ErrNoEquipmentSelected
	}
	if err := s.validateSchedule(draft); err != nil {
		return nil, err
	}
	if !draft.Contact.Complete() {
		return nil, wizard.ErrContactIncomplete
	}

	if err := s.ensureSession(ctx, draft.Contact); err != nil {
		return nil, err
	}

	req := api.CreateReservationRequest{
		EquipmentID: draft.EquipmentID,
		StartDate:   draft.StartDate.Format(dateLayout),
		EndDate:     draft.EndDate.Format(dateLayout),
	}
	if draft.Notes != "" {
		req.Notes = &draft.Notes
	}

	reservation, err := s.gateway.CreateReservation(ctx, req, uuid.New())
	if err != nil {
		return nil, errs.Wrap(err, "failed to create reservation")
	}
	s.log.Info("reservation created",
		"reservation_id", reservation.ID,
		"contract_number", reservation.ContractNumber,
	)
	return reservation, nil
}

// ensureSession leaves the store holding a valid session. An existing
// session is used as-is; otherwise a guest account is registered under a
// one-time random credential and immediately signed in. A duplicate-email
// rejection from registration halts the pipeline with the backend's own
// message.
func (s *Submitter) ensureSession(ctx context.Context, contact wizard.Contact) error {
	if !s.sessions.Read().IsZero() {
		return nil
	}

	password, err := oneTimeCredential()
	if err != nil {
		return err
	}

	if _, err := s.gateway.Register(ctx, api.RegisterRequest{
		Name:     contact.FullName(),
		Email:    contact.Email,
		Phone:    contact.Phone,
		Company:  contact.Company,
		NIP:      contact.NIP,
		Address:  contact.Address,
		Password: password,
	}); err != nil {
		return errs.Wrap(err, "failed to register guest account")
	}

	token, err := s.gateway.Login(ctx, api.LoginRequest{
		Email:    contact.Email,
		Password: password,
	})
	if err != nil {
		return errs.Wrap(err, "failed to sign in guest account")
	}

	return s.sessions.Save(session.Session{
		Token: token.AccessToken,
		Profile: session.Profile{
			ID:      token.User.ID,
			Name:    token.User.Name,
			Email:   token.User.Email,
			Phone:   token.User.Phone,
			Company: token.User.Company,
			NIP:     token.User.NIP,
			Address: token.User.Address,
			IsAdmin: token.User.IsAdmin,
		},
	})
}

func (s *Submitter) validateSchedule(draft wizard.Draft) error {
	if !draft.HasSchedule() {
		return wizard.ErrScheduleIncomplete
	}
	if draft.EndDate.Before(draft.StartDate) {
		return wizard.ErrScheduleInverted
	}
	today := s.clock.Now().Truncate(24 * time.Hour)
	if draft.StartDate.Before(today) {
		return ErrStartDateInPast
	}
	return nil
}

// oneTimeCredential generates the throwaway password protecting a guest
// registration. It is never shown to the user; the account is usable only
// through the session minted right after.
func oneTimeCredential() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errs.Wrap(err, "failed to generate credential")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// FailureMessage maps a pipeline error onto the text shown next to the
// submit control. Backend-phrased rejections (duplicate email and other
// business rules) pass through verbatim.
func FailureMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrStartDateInPast):
		return "Data rozpoczęcia nie może być w przeszłości."
	case errors.Is(err, wizard.ErrContactIncomplete):
		return "Uzupełnij wszystkie wymagane dane kontaktowe."
	case api.IsKind(err, api.KindUnauthorized):
		return "Sesja wygasła. Zaloguj się ponownie."
	case api.IsKind(err, api.KindValidation), api.IsKind(err, api.KindNotFound):
		if detail := api.Detail(err); detail != "" {
			return detail
		}
		return "Nie udało się utworzyć rezerwacji."
	default:
		return "Wystąpił błąd. Spróbuj ponownie później."
	}
}
