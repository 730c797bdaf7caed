// Package mailer renders the HTML emails sent after a registration.
package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"league-registration/internal/config"
	"league-registration/internal/domain"

	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

const displayTimezone = "America/Toronto"

// Message is a rendered email without addressing.
type Message struct {
	Subject string
	HTML    string
}

type Renderer struct {
	tmpl     *template.Template
	loc      *time.Location
	baseURL  string
	currency string
}

func NewRenderer(cfg *config.Config, logger zerolog.Logger) (*Renderer, error) {
	loc, err := time.LoadLocation(displayTimezone)
	if err != nil {
		logger.Warn().Err(err).Str("timezone", displayTimezone).Msg("timezone data unavailable, using UTC")
		loc = time.UTC
	}
	return newRenderer(cfg.PublicBaseURL, cfg.PaymentCurrency, loc)
}

func newRenderer(baseURL, currency string, loc *time.Location) (*Renderer, error) {
	tmpl, err := template.New("mail").Funcs(template.FuncMap{
		"row": func(label string, value any) rowView {
			return rowView{Label: label, Value: value}
		},
		"ifelse": func(cond bool, a, b string) string {
			if cond {
				return a
			}
			return b
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &Renderer{
		tmpl:     tmpl,
		loc:      loc,
		baseURL:  strings.TrimRight(baseURL, "/"),
		currency: currency,
	}, nil
}

type rowView struct {
	Label string
	Value any
}

type costView struct {
	Base  string
	Tax   string
	Total string
}

type confirmationView struct {
	CaptainName string
	TeamName    string
	LeagueName  string
	Waitlist    bool
	Cost        *costView
	AccountURL  string
}

type adminView struct {
	TeamID       int64
	TeamName     string
	LeagueName   string
	RegisteredAt string
	RosterSize   string
	CaptainName  string
	CaptainEmail string
	CaptainPhone string
	AdminURL     string
}

// Confirmation renders the captain's email. Waitlist entries get a
// different subject and body.
func (r *Renderer) Confirmation(s domain.RegistrationSummary) (Message, error) {
	view := confirmationView{
		CaptainName: orDefault(s.CaptainName, "Team Captain"),
		TeamName:    s.TeamName,
		LeagueName:  s.LeagueName,
		Waitlist:    s.Waitlist,
		AccountURL:  r.baseURL + "/#/my-account/teams",
	}
	if s.Cost != nil {
		view.Cost = &costView{
			Base:  s.Cost.Base.Format(r.currency),
			Tax:   s.Cost.Tax.Format(r.currency),
			Total: s.Cost.Total.Format(r.currency),
		}
	}

	html, err := r.execute("confirmation", view)
	if err != nil {
		return Message{}, err
	}

	subject := fmt.Sprintf("Registration Confirmed: %s in %s", s.TeamName, s.LeagueName)
	if s.Waitlist {
		subject = fmt.Sprintf("Waitlist Confirmation: %s", s.LeagueName)
	}
	return Message{Subject: subject, HTML: html}, nil
}

// AdminRegistration renders the "New Team Registration" notice for league
// staff.
func (r *Renderer) AdminRegistration(s domain.RegistrationSummary) (Message, error) {
	html, err := r.execute("admin_registration", adminView{
		TeamID:       s.TeamID,
		TeamName:     s.TeamName,
		LeagueName:   s.LeagueName,
		RegisteredAt: r.FormatTime(s.RegisteredAt),
		RosterSize:   playerCount(s.RosterCount),
		CaptainName:  s.CaptainName,
		CaptainEmail: s.CaptainEmail,
		CaptainPhone: s.CaptainPhone,
		AdminURL:     r.baseURL + "/#/my-account/manage-teams",
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		Subject: fmt.Sprintf("New Team Registration: %s in %s", s.TeamName, s.LeagueName),
		HTML:    html,
	}, nil
}

// FormatTime renders t in the league's local time zone.
func (r *Renderer) FormatTime(t time.Time) string {
	return t.In(r.loc).Format("Monday, January 2, 2006 at 03:04 PM")
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", name, err)
	}
	return buf.String(), nil
}

func playerCount(n int) string {
	if n == 1 {
		return "1 player"
	}
	return fmt.Sprintf("%d players", n)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
