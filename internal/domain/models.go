package domain

import (
	"time"
)

// Section partitions a league's teams. Display orders are unique per section.
type Section string

const (
	SectionActive   Section = "active"
	SectionWaitlist Section = "waitlist"
)

func (s Section) IsActive() bool {
	return s == SectionActive
}

type Team struct {
	ID           int64
	LeagueID     int64
	Name         string
	CaptainID    string
	Roster       []string // user ids, captain first
	Active       bool     // false means waitlisted
	DisplayOrder int
	SkillLevelID *int64
	CreatedAt    time.Time
}

func (t Team) Section() Section {
	if t.Active {
		return SectionActive
	}
	return SectionWaitlist
}

type League struct {
	ID   int64
	Name string
	Cost *Money // nil when the league is free
}

type UserProfile struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	TeamIDs []int64
}

type SkillLevel struct {
	ID          int64
	Name        string
	Description *string
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
)

// FeeRecord is a league payment owed by a user, optionally tied to a team.
type FeeRecord struct {
	ID         int64
	UserID     string
	TeamID     *int64
	LeagueID   int64
	LeagueName string
	AmountDue  Money
	AmountPaid Money
	Status     PaymentStatus
	DueDate    *time.Time
}

// Outstanding is always derived from the current amounts, never stored.
func (f FeeRecord) Outstanding() Money {
	return f.AmountDue - f.AmountPaid
}

type CustomerMapping struct {
	ID         string // nanoid
	UserID     string
	CustomerID string
	CreatedAt  time.Time
	DeletedAt  *time.Time
}

// Session identifies the authenticated caller of a request.
type Session struct {
	UserID string
	Email  string
	Token  string // raw bearer token, forwarded to the admin trigger
}

type PaymentIntent struct {
	ClientSecret string
	IntentID     string
	Amount       Money
	Currency     string
}
