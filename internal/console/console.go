// Package console is the interactive terminal front end. Each command maps
// onto one surface of the web application; route guarding runs before a
// surface is entered, exactly as the browser middleware would.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"spellbudex/internal/api"
	"spellbudex/internal/catalog"
	"spellbudex/internal/checkout"
	"spellbudex/internal/payment"
	"spellbudex/internal/routeguard"
	"spellbudex/internal/session"
	"spellbudex/internal/wizard"
)

const dateLayout = "2006-01-02"

type Console struct {
	backend   *api.Client
	catalog   *catalog.Service
	submitter *checkout.Submitter
	payments  *payment.Flow
	sessions  *session.Store
	notifier  *Notifier
	log       *slog.Logger

	in    *bufio.Scanner
	out   io.Writer
	query catalog.Query
}

func New(
	backend *api.Client,
	catalogSvc *catalog.Service,
	submitter *checkout.Submitter,
	payments *payment.Flow,
	sessions *session.Store,
	notifier *Notifier,
	log *slog.Logger,
	in io.Reader,
	out io.Writer,
) *Console {
	return &Console{
		backend:   backend,
		catalog:   catalogSvc,
		submitter: submitter,
		payments:  payments,
		sessions:  sessions,
		notifier:  notifier,
		log:       log,
		in:        bufio.NewScanner(in),
		out:       out,
		query:     catalog.Query{Category: catalog.CategoryAll},
	}
}

func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "SpellBudex — wypożyczalnia sprzętu budowlanego")
	fmt.Fprintln(c.out, "Wpisz 'pomoc' aby zobaczyć dostępne polecenia.")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.notifier.ConsumeExpired() {
			// Post-eviction redirect to the sign-in surface.
			c.printPrompt(routeguard.LoginPath)
		} else {
			c.printPrompt("")
		}

		if !c.in.Scan() {
			return c.in.Err()
		}
		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "pomoc", "help":
			c.printHelp()
		case "katalog":
			c.showCatalog(ctx, arg)
		case "kategoria":
			c.setCategory(arg)
		case "szukaj":
			c.query.Search = arg
			c.showCatalog(ctx, "")
		case "sortuj":
			c.setSort(arg)
		case "sprzet":
			c.showEquipment(ctx, arg)
		case "rezerwuj":
			c.runWizard(ctx, arg)
		case "zaplac":
			c.payForReservation(ctx, arg)
		case "rezerwacje":
			c.visit("/my-reservations", func() { c.listReservations(ctx) })
		case "profil":
			c.visit("/profile", func() { c.showProfile(ctx) })
		case "dashboard":
			c.visit("/dashboard", func() { c.showDashboard(ctx) })
		case "login":
			c.visit(routeguard.LoginPath, func() { c.login(ctx, arg) })
		case "logout":
			c.sessions.Clear()
			fmt.Fprintln(c.out, "Wylogowano.")
		case "wyjdz", "quit", "exit":
			return nil
		default:
			fmt.Fprintf(c.out, "Nieznane polecenie: %s\n", cmd)
		}
	}
}

// visit runs the guard for a surface, performing the redirect it decides
// instead of entering the surface.
func (c *Console) visit(path string, render func()) {
	switch routeguard.Decide(path, c.sessions.Read()) {
	case routeguard.Allow:
		c.notifier.SetLocation(path)
		defer c.notifier.SetLocation("/")
		render()
	case routeguard.ToLogin:
		fmt.Fprintln(c.out, "Ta strona wymaga zalogowania. Użyj: login <email> <hasło>")
	case routeguard.ToHome:
		fmt.Fprintln(c.out, "Przekierowano na stronę główną.")
	case routeguard.ToDashboard:
		fmt.Fprintln(c.out, "Jesteś już zalogowany — przekierowano do panelu.")
	}
}

func (c *Console) printPrompt(path string) {
	sess := c.sessions.Read()
	who := "gość"
	if !sess.IsZero() {
		who = sess.Profile.Email
	}
	if path != "" {
		fmt.Fprintf(c.out, "[%s %s]> ", who, path)
		return
	}
	fmt.Fprintf(c.out, "[%s]> ", who)
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, `Polecenia:
  katalog [tekst]     lista dostępnego sprzętu (opcjonalnie z wyszukiwaniem)
  kategoria <nazwa>   filtr kategorii (Wszystkie, Maszyny ziemne, Żurawie, Rusztowania)
  sortuj <klucz>      sortowanie: name | price | availability
  sprzet <id>         szczegóły pozycji
  rezerwuj [id]       kreator rezerwacji
  zaplac <id>         płatność za rezerwację
  rezerwacje          moje rezerwacje
  profil              profil użytkownika
  dashboard           panel administratora
  login <email> <hasło>
  logout
  wyjdz
`)
}

func (c *Console) showCatalog(ctx context.Context, search string) {
	if search != "" {
		c.query.Search = search
	}
	items, err := c.catalog.FetchAvailable(ctx)
	if err != nil {
		c.printError(err)
		return
	}
	for _, item := range catalog.Refine(items, c.query) {
		marker := " "
		if !item.Available {
			marker = "x"
		}
		fmt.Fprintf(c.out, "%4d [%s] %-40s %-16s %8.2f zł/dzień\n",
			item.ID, marker, item.Name, item.Category, item.DailyRate)
	}
}

func (c *Console) setCategory(arg string) {
	cat := catalog.Category(arg)
	if !cat.Valid() {
		fmt.Fprintf(c.out, "Nieznana kategoria: %s\n", arg)
		return
	}
	c.query.Category = cat
}

func (c *Console) setSort(arg string) {
	switch catalog.SortKey(arg) {
	case catalog.SortByName, catalog.SortByPrice, catalog.SortByAvailability:
		c.query.Sort = catalog.SortKey(arg)
	default:
		fmt.Fprintf(c.out, "Nieznany klucz sortowania: %s\n", arg)
	}
}

func (c *Console) showEquipment(ctx context.Context, arg string) {
	id, ok := c.parseID(arg)
	if !ok {
		return
	}
	item, err := c.catalog.Get(ctx, id)
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintf(c.out, "%s (%s)\n%s\nStawka dzienna: %.2f zł\n", item.Name, item.Category, item.Description, item.DailyRate)
	for _, f := range item.Features {
		fmt.Fprintf(c.out, "  - %s\n", f)
	}
}

// runWizard walks the three reservation steps, feeding every answer through
// the reducer so the same guards apply as in the web wizard.
func (c *Console) runWizard(ctx context.Context, arg string) {
	m := wizard.New()
	if arg != "" {
		id, ok := c.parseID(arg)
		if !ok {
			return
		}
		item, err := c.catalog.Get(ctx, id)
		if err != nil {
			c.printError(err)
			return
		}
		m = wizard.NewWithEquipment(item)
	}

	for m.Step == wizard.StepSelectEquipment {
		c.showCatalog(ctx, "")
		id, ok := c.parseID(c.ask("Wybierz sprzęt (id): "))
		if !ok {
			return
		}
		item, err := c.catalog.Get(ctx, id)
		if err != nil {
			c.printError(err)
			continue
		}
		m = c.mustApply(m, wizard.SelectEquipment{Equipment: item})
		m = c.tryNext(m)
	}

	for m.Step == wizard.StepSchedule {
		start, ok := c.askDate("Data od (RRRR-MM-DD): ")
		if !ok {
			return
		}
		end, ok := c.askDate("Data do (RRRR-MM-DD): ")
		if !ok {
			return
		}
		m = c.mustApply(m, wizard.SetSchedule{Start: start, End: end})
		m = c.mustApply(m, wizard.SetNotes{Notes: c.ask("Uwagi (opcjonalnie): ")})
		fmt.Fprintf(c.out, "Do zapłaty: %.2f zł\n", m.Total())
		m = c.tryNext(m)
	}

	for m.Step == wizard.StepConfirm {
		contact := wizard.Contact{
			FirstName: c.ask("Imię: "),
			LastName:  c.ask("Nazwisko: "),
			Email:     c.ask("Email: "),
			Phone:     c.ask("Telefon: "),
			Company:   c.ask("Firma: "),
			NIP:       c.ask("NIP (opcjonalnie): "),
			Address:   c.ask("Adres: "),
		}
		m = c.mustApply(m, wizard.SetContact{Contact: contact})
		if !m.CanSubmit() {
			fmt.Fprintf(c.out, "Uzupełnij pola: %s\n", strings.Join(contact.MissingFields(), ", "))
			continue
		}

		reservation, err := c.submitter.Submit(ctx, m.Draft)
		if err != nil {
			fmt.Fprintln(c.out, checkout.FailureMessage(err))
			m = c.mustApply(m, wizard.SubmitFailed{Message: checkout.FailureMessage(err)})
			if c.ask("Spróbować ponownie? (t/n): ") != "t" {
				return
			}
			continue
		}
		m = c.mustApply(m, wizard.SubmitSucceeded{Reservation: *reservation})
		fmt.Fprintf(c.out, "Rezerwacja %s utworzona (nr umowy %s), razem %.2f zł.\n",
			strconv.FormatInt(reservation.ID, 10), reservation.ContractNumber, reservation.TotalCost)

		if c.ask("Przejść do płatności? (t/n): ") == "t" {
			c.payForReservation(ctx, strconv.FormatInt(reservation.ID, 10))
		}
	}
}

func (c *Console) payForReservation(ctx context.Context, arg string) {
	id, ok := c.parseID(arg)
	if !ok {
		return
	}
	result, err := c.payments.Start(ctx, id)
	if err != nil {
		c.printError(err)
		return
	}
	switch result.Status {
	case payment.StatusSucceeded:
		fmt.Fprintln(c.out, "Płatność zakończona pomyślnie.")
	case payment.StatusRequiresAction:
		fmt.Fprintln(c.out, result.Message)
	default:
		fmt.Fprintln(c.out, result.Message)
	}
}

func (c *Console) listReservations(ctx context.Context) {
	reservations, err := c.backend.ListReservations(ctx, "")
	if err != nil {
		c.printError(err)
		return
	}
	for _, r := range reservations {
		fmt.Fprintf(c.out, "%4d %-14s %s → %s  %-10s %8.2f zł\n",
			r.ID, r.ContractNumber,
			r.StartDate.Format(dateLayout), r.EndDate.Format(dateLayout),
			r.Status, r.TotalCost)
	}
}

func (c *Console) showProfile(ctx context.Context) {
	user, err := c.backend.Me(ctx)
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintf(c.out, "%s <%s>\nTelefon: %s\nFirma: %s\nAdres: %s\n",
		user.Name, user.Email, user.Phone, user.Company, user.Address)
}

func (c *Console) showDashboard(ctx context.Context) {
	stats, err := c.backend.Statistics(ctx)
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintf(c.out, "Sprzęt: %d (dostępny %d, wynajęty %d, serwis %d)\n",
		stats.Equipment.Total, stats.Equipment.Available, stats.Equipment.Rented, stats.Equipment.Maintenance)
	fmt.Fprintf(c.out, "Rezerwacje: %d (aktywne %d, oczekujące %d, zakończone %d)\n",
		stats.Reservations.Total, stats.Reservations.Active, stats.Reservations.Pending, stats.Reservations.Completed)
	fmt.Fprintf(c.out, "Przychód miesięczny: %.2f %s\n", stats.Revenue.Monthly, stats.Revenue.Currency)
}

func (c *Console) login(ctx context.Context, arg string) {
	email, password, ok := strings.Cut(arg, " ")
	if !ok {
		fmt.Fprintln(c.out, "Użycie: login <email> <hasło>")
		return
	}
	token, err := c.backend.Login(ctx, api.LoginRequest{Email: email, Password: strings.TrimSpace(password)})
	if err != nil {
		c.printError(err)
		return
	}
	err = c.sessions.Save(session.Session{
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
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintf(c.out, "Zalogowano jako %s.\n", token.User.Email)
}

// mustApply feeds one event; a guard rejection is rendered inline and the
// previous state kept.
func (c *Console) mustApply(m wizard.Machine, ev wizard.Event) wizard.Machine {
	next, err := m.Apply(ev)
	if err != nil {
		fmt.Fprintln(c.out, guardMessage(err))
		return m
	}
	return next
}

func (c *Console) tryNext(m wizard.Machine) wizard.Machine {
	next, err := m.Apply(wizard.Next{})
	if err != nil {
		fmt.Fprintln(c.out, guardMessage(err))
		return m
	}
	return next
}

func guardMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, wizard.ErrScheduleInverted):
		return "Data końcowa nie może być wcześniejsza niż początkowa."
	case errors.Is(err, wizard.ErrScheduleIncomplete):
		return "Podaj obie daty."
	case errors.Is(err, wizard.ErrNoEquipmentSelected):
		return "Najpierw wybierz sprzęt."
	default:
		return err.Error()
	}
}

func (c *Console) ask(prompt string) string {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *Console) askDate(prompt string) (time.Time, bool) {
	raw := c.ask(prompt)
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		fmt.Fprintf(c.out, "Nieprawidłowa data: %s\n", raw)
		return time.Time{}, false
	}
	return d, true
}

func (c *Console) parseID(arg string) (int64, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(c.out, "Nieprawidłowy identyfikator: %s\n", arg)
		return 0, false
	}
	return id, true
}

func (c *Console) printError(err error) {
	if api.IsKind(err, api.KindNotFound) {
		fmt.Fprintln(c.out, "Nie znaleziono.")
		return
	}
	if detail := api.Detail(err); detail != "" {
		fmt.Fprintln(c.out, detail)
		return
	}
	// Connectivity and server problems were already announced by the
	// notifier; avoid printing raw error chains at the prompt.
	c.log.Debug("command failed", "error", err.Error())
}
