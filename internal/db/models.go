package db

import (
	"database/sql"
	"time"
)

type League struct {
	ID        int64
	Name      string
	Cost      sql.NullFloat64
	CreatedAt time.Time
}

type Skill struct {
	ID          int64
	Name        string
	Description sql.NullString
	OrderIndex  int64
}

type User struct {
	ID        string
	Name      string
	Email     string
	Phone     sql.NullString
	TeamIds   string // JSON array
	CreatedAt time.Time
}

type Team struct {
	ID           int64
	Name         string
	LeagueID     int64
	CaptainID    string
	Roster       string // JSON array
	Active       bool
	DisplayOrder int64
	SkillLevelID sql.NullInt64
	CreatedAt    time.Time
}

type LeaguePayment struct {
	ID         int64
	UserID     string
	TeamID     sql.NullInt64
	LeagueID   int64
	AmountDue  float64
	AmountPaid float64
	Status     string
	DueDate    sql.NullTime
	CreatedAt  time.Time
}

type StripeCustomer struct {
	ID         string
	UserID     string
	CustomerID string
	CreatedAt  time.Time
	DeletedAt  sql.NullTime
}
