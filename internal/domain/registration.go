package domain

import (
	"strings"
	"time"
)

// BeginnerSkillName is the skill level the leagues do not accept.
const BeginnerSkillName = "Beginner"

const BeginnerRejectionMessage = "Thank you for your interest!\n" +
	"We appreciate your enthusiasm for joining our volleyball league. At this time, " +
	"our programs are designed for intermediate to elite level players with advanced " +
	"skills and a strong understanding of the game. Unfortunately, we're not able " +
	"to accept beginner level registrations."

// RegistrationRequest is either a RegularRegistration or a
// WaitlistRegistration.
type RegistrationRequest interface {
	Section() Section
	SkillLevel() *int64
	isRegistrationRequest()
}

type RegularRegistration struct {
	TeamName     string
	SkillLevelID *int64
}

func (RegularRegistration) Section() Section { return SectionActive }
func (r RegularRegistration) SkillLevel() *int64 { return r.SkillLevelID }
func (RegularRegistration) isRegistrationRequest() {}

// WaitlistRegistration needs no team name; one is derived from the captain.
type WaitlistRegistration struct {
	SkillLevelID *int64
}

func (WaitlistRegistration) Section() Section { return SectionWaitlist }
func (r WaitlistRegistration) SkillLevel() *int64 { return r.SkillLevelID }
func (WaitlistRegistration) isRegistrationRequest() {}

// WaitlistTeamName names a waitlist entry after its captain.
func WaitlistTeamName(captainName string) string {
	name := strings.TrimSpace(captainName)
	if name == "" {
		name = "Team"
	}
	return "Waitlist - " + name
}

// PolicyRejection is an expected business outcome, not a fault.
type PolicyRejection struct {
	Reason  string
	Message string
}

// CheckEligibility returns a rejection when the selected skill level may not
// register, nil otherwise.
func CheckEligibility(skill SkillLevel) *PolicyRejection {
	if skill.Name == BeginnerSkillName {
		return &PolicyRejection{Reason: "beginner_skill_level", Message: BeginnerRejectionMessage}
	}
	return nil
}

type OutcomeKind string

const (
	OutcomeRegistered OutcomeKind = "registered"
	OutcomeWaitlisted OutcomeKind = "waitlisted"
	OutcomeRejected   OutcomeKind = "rejected"
)

// RegistrationOutcome holds exactly one of Team, Waitlist or Rejection,
// according to Kind.
type RegistrationOutcome struct {
	Kind      OutcomeKind
	Team      *TeamSummary
	Waitlist  *WaitlistNotice
	Rejection *PolicyRejection
}

type TeamSummary struct {
	TeamID       int64
	TeamName     string
	LeagueID     int64
	LeagueName   string
	DisplayOrder int
	Cost         *CostBreakdown
}

type WaitlistNotice struct {
	TeamID     int64
	LeagueName string
	Message    string
}

// RegistrationSummary is what notifications are built from.
type RegistrationSummary struct {
	TeamID       int64
	TeamName     string
	LeagueID     int64
	LeagueName   string
	Waitlist     bool
	CaptainID    string
	CaptainName  string
	CaptainEmail string
	CaptainPhone string
	RosterCount  int
	Cost         *CostBreakdown
	RegisteredAt time.Time
	SessionToken string
}
