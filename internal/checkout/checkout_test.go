//go:build unit

package checkout_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"spellbudex/internal/api"
	"spellbudex/internal/checkout"
	"spellbudex/internal/pkg/clock"
	"spellbudex/internal/session"
	"spellbudex/internal/wizard"
	checkoutmock "spellbudex/tests/mock/checkout"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SubmitterTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockGateway  *checkoutmock.MockGateway
	mockSessions *checkoutmock.MockSessionStore
	submitter    *checkout.Submitter
}

func (s *SubmitterTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockGateway = checkoutmock.NewMockGateway(s.mockCtrl)
	s.mockSessions = checkoutmock.NewMockSessionStore(s.mockCtrl)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	// Pinned before the drafts' June 2025 rental window.
	clk := clock.NewFixedClock(date("2025-05-20"))
	s.submitter = checkout.NewSubmitter(s.mockGateway, s.mockSessions, clk, log)
}

func (s *SubmitterTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSubmitterSuite(t *testing.T) {
	suite.Run(t, new(SubmitterTestSuite))
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func completeDraft() wizard.Draft {
	return wizard.Draft{
		EquipmentID: 1,
		StartDate:   date("2025-06-01"),
		EndDate:     date("2025-06-03"),
		Notes:       "Dostawa na plac budowy",
		Contact: wizard.Contact{
			FirstName: "Anna",
			LastName:  "Kowalska",
			Email:     "anna@example.pl",
			Phone:     "+48 600 100 200",
			Company:   "BudMax Sp. z o.o.",
			NIP:       "5213017228",
			Address:   "ul. Długa 12, Warszawa",
		},
	}
}

func activeSession() session.Session {
	return session.Session{
		Token:   "opaque-credential",
		Profile: session.Profile{ID: 7, Email: "anna@example.pl"},
	}
}

func (s *SubmitterTestSuite) TestSubmit_WithExistingSessionSkipsRegistration() {
	s.mockSessions.EXPECT().Read().Return(activeSession())

	var gotReq api.CreateReservationRequest
	s.mockGateway.EXPECT().
		CreateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req api.CreateReservationRequest, key uuid.UUID) (*api.ReservationView, error) {
			gotReq = req
			s.NotEqual(uuid.Nil, key)
			return &api.ReservationView{ID: 42, ContractNumber: "RES-2025-042"}, nil
		})

	reservation, err := s.submitter.Submit(context.Background(), completeDraft())
	s.Require().NoError(err)
	s.Equal(int64(42), reservation.ID)

	s.Equal(int64(1), gotReq.EquipmentID)
	s.Equal("2025-06-01", gotReq.StartDate)
	s.Equal("2025-06-03", gotReq.EndDate)
	s.Require().NotNil(gotReq.Notes)
	s.Equal("Dostawa na plac budowy", *gotReq.Notes)
}

func (s *SubmitterTestSuite) TestSubmit_GuestRegistersThenLogsInThenReserves() {
	s.mockSessions.EXPECT().Read().Return(session.Session{})

	var registeredPassword string
	gomock.InOrder(
		s.mockGateway.EXPECT().
			Register(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req api.RegisterRequest) (*api.UserView, error) {
				registeredPassword = req.Password
				s.Equal("Anna Kowalska", req.Name)
				s.Equal("anna@example.pl", req.Email)
				s.Equal("5213017228", req.NIP)
				s.GreaterOrEqual(len(req.Password), 32, "generated credential must not be guessable")
				return &api.UserView{ID: 7, Name: req.Name, Email: req.Email}, nil
			}),
		s.mockGateway.EXPECT().
			Login(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req api.LoginRequest) (*api.TokenView, error) {
				s.Equal("anna@example.pl", req.Email)
				s.Equal(registeredPassword, req.Password, "login must reuse the registration credential")
				return &api.TokenView{
					AccessToken: "fresh-token",
					User:        api.UserView{ID: 7, Name: "Anna Kowalska", Email: req.Email},
				}, nil
			}),
		s.mockGateway.EXPECT().
			CreateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&api.ReservationView{ID: 43}, nil),
	)

	s.mockSessions.EXPECT().Save(gomock.Any()).DoAndReturn(func(sess session.Session) error {
		s.Equal("fresh-token", sess.Token)
		s.Equal(int64(7), sess.Profile.ID)
		return nil
	})

	reservation, err := s.submitter.Submit(context.Background(), completeDraft())
	s.Require().NoError(err)
	s.Equal(int64(43), reservation.ID)
}

func (s *SubmitterTestSuite) TestSubmit_DuplicateEmailHaltsPipeline() {
	s.mockSessions.EXPECT().Read().Return(session.Session{})

	rejection := &api.Error{Kind: api.KindValidation, Status: 400, Message: "Email już jest zarejestrowany"}
	s.mockGateway.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, rejection)
	// No Login, no CreateReservation, no Save: the pipeline stops dead.

	_, err := s.submitter.Submit(context.Background(), completeDraft())
	s.Require().Error(err)
	s.True(api.IsKind(err, api.KindValidation))
	s.Equal("Email już jest zarejestrowany", checkout.FailureMessage(err))
}

func (s *SubmitterTestSuite) TestSubmit_ReservationFailureDoesNotRollBackAccount() {
	s.mockSessions.EXPECT().Read().Return(session.Session{})

	s.mockGateway.EXPECT().Register(gomock.Any(), gomock.Any()).
		Return(&api.UserView{ID: 7}, nil)
	s.mockGateway.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(&api.TokenView{AccessToken: "fresh-token", User: api.UserView{ID: 7}}, nil)
	s.mockSessions.EXPECT().Save(gomock.Any()).Return(nil)
	s.mockGateway.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &api.Error{Kind: api.KindServer, Status: 500})

	// The session minted on the way stays in place; only the error surfaces.
	_, err := s.submitter.Submit(context.Background(), completeDraft())
	s.Require().Error(err)
	s.True(api.IsKind(err, api.KindServer))
}

func (s *SubmitterTestSuite) TestSubmit_GuardsRejectIncompleteDrafts() {
	// None of these may reach the gateway.
	noEquipment := completeDraft()
	noEquipment.EquipmentID = 0
	_, err := s.submitter.Submit(context.Background(), noEquipment)
	s.ErrorIs(err, wizard.ErrNoEquipmentSelected)

	noDates := completeDraft()
	noDates.EndDate = time.Time{}
	_, err = s.submitter.Submit(context.Background(), noDates)
	s.ErrorIs(err, wizard.ErrScheduleIncomplete)

	inverted := completeDraft()
	inverted.StartDate, inverted.EndDate = inverted.EndDate, inverted.StartDate
	_, err = s.submitter.Submit(context.Background(), inverted)
	s.ErrorIs(err, wizard.ErrScheduleInverted)

	past := completeDraft()
	past.StartDate = date("2024-01-01")
	past.EndDate = date("2024-01-03")
	_, err = s.submitter.Submit(context.Background(), past)
	s.ErrorIs(err, checkout.ErrStartDateInPast)

	noPhone := completeDraft()
	noPhone.Contact.Phone = ""
	_, err = s.submitter.Submit(context.Background(), noPhone)
	s.ErrorIs(err, wizard.ErrContactIncomplete)
}

func (s *SubmitterTestSuite) TestSubmit_OmitsEmptyNotes() {
	s.mockSessions.EXPECT().Read().Return(activeSession())

	s.mockGateway.EXPECT().
		CreateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req api.CreateReservationRequest, _ uuid.UUID) (*api.ReservationView, error) {
			s.Nil(req.Notes)
			return &api.ReservationView{ID: 44}, nil
		})

	draft := completeDraft()
	draft.Notes = ""
	_, err := s.submitter.Submit(context.Background(), draft)
	s.Require().NoError(err)
}

func TestFailureMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, ""},
		{
			"unauthorized asks for a fresh sign-in",
			&api.Error{Kind: api.KindUnauthorized, Status: 401},
			"Sesja wygasła. Zaloguj się ponownie.",
		},
		{
			"business rejection passes through verbatim",
			&api.Error{Kind: api.KindValidation, Status: 400, Message: "Email już jest zarejestrowany"},
			"Email już jest zarejestrowany",
		},
		{
			"validation without detail gets a fallback",
			&api.Error{Kind: api.KindValidation, Status: 400},
			"Nie udało się utworzyć rezerwacji.",
		},
		{
			"server failure stays generic",
			&api.Error{Kind: api.KindServer, Status: 503},
			"Wystąpił błąd. Spróbuj ponownie później.",
		},
		{
			"network failure stays generic",
			&api.Error{Kind: api.KindNetwork},
			"Wystąpił błąd. Spróbuj ponownie później.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkout.FailureMessage(tt.err); got != tt.want {
				t.Errorf("FailureMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
