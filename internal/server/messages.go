package server

import "league-registration/internal/domain"

const (
	RegisterTeamProcedure        = "/league.v1.RegistrationService/RegisterTeam"
	CreatePaymentIntentProcedure = "/league.v1.PaymentService/CreatePaymentIntent"
)

type RegisterTeamRequest struct {
	LeagueID     int64  `json:"league_id"`
	TeamName     string `json:"team_name,omitempty"`
	SkillLevelID *int64 `json:"skill_level_id,omitempty"`
	Waitlist     bool   `json:"waitlist"`
}

type RegisterTeamResponse struct {
	Outcome string       `json:"outcome"`
	Team    *TeamMessage `json:"team,omitempty"`
	TeamID  int64        `json:"team_id,omitempty"`
	Reason  string       `json:"reason,omitempty"`
	Message string       `json:"message,omitempty"`
}

type TeamMessage struct {
	TeamID       int64        `json:"team_id"`
	TeamName     string       `json:"team_name"`
	LeagueID     int64        `json:"league_id"`
	LeagueName   string       `json:"league_name"`
	DisplayOrder int          `json:"display_order"`
	Cost         *CostMessage `json:"cost,omitempty"`
}

// CostMessage amounts are in minor units.
type CostMessage struct {
	Base  int64 `json:"base"`
	Tax   int64 `json:"tax"`
	Total int64 `json:"total"`
}

type CreatePaymentIntentRequest struct {
	PaymentID int64 `json:"payment_id"`
}

type CreatePaymentIntentResponse struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

func (r *RegisterTeamRequest) toDomain() domain.RegistrationRequest {
	if r.Waitlist {
		return domain.WaitlistRegistration{SkillLevelID: r.SkillLevelID}
	}
	return domain.RegularRegistration{TeamName: r.TeamName, SkillLevelID: r.SkillLevelID}
}

func fromOutcome(o *domain.RegistrationOutcome) *RegisterTeamResponse {
	resp := &RegisterTeamResponse{Outcome: string(o.Kind)}
	switch o.Kind {
	case domain.OutcomeRegistered:
		t := o.Team
		resp.TeamID = t.TeamID
		resp.Team = &TeamMessage{
			TeamID:       t.TeamID,
			TeamName:     t.TeamName,
			LeagueID:     t.LeagueID,
			LeagueName:   t.LeagueName,
			DisplayOrder: t.DisplayOrder,
		}
		if t.Cost != nil {
			resp.Team.Cost = &CostMessage{
				Base:  int64(t.Cost.Base),
				Tax:   int64(t.Cost.Tax),
				Total: int64(t.Cost.Total),
			}
		}
	case domain.OutcomeWaitlisted:
		resp.TeamID = o.Waitlist.TeamID
		resp.Message = o.Waitlist.Message
	case domain.OutcomeRejected:
		resp.Reason = o.Rejection.Reason
		resp.Message = o.Rejection.Message
	}
	return resp
}
