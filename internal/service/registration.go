package service

import (
	"context"
	"errors"
	"html"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"league-registration/internal/constants"
	"league-registration/internal/domain"
	"league-registration/internal/repository"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
)

// RegistrationService is the only writer of teams. It validates a request,
// applies the eligibility policy, inserts the team at the next display
// position, records membership on the captain and fires notifications.
type RegistrationService struct {
	teams      TeamStore
	profiles   ProfileStore
	leagues    LeagueStore
	skills     SkillStore
	order      *OrderAssigner
	dispatcher Dispatcher
	sanitizer  *bluemonday.Policy
	now        func() time.Time
	logger     zerolog.Logger
}

func NewRegistrationService(
	teams TeamStore,
	profiles ProfileStore,
	leagues LeagueStore,
	skills SkillStore,
	order *OrderAssigner,
	dispatcher Dispatcher,
	logger zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		teams:      teams,
		profiles:   profiles,
		leagues:    leagues,
		skills:     skills,
		order:      order,
		dispatcher: dispatcher,
		sanitizer:  bluemonday.StrictPolicy(),
		now:        time.Now,
		logger:     logger,
	}
}

func (s *RegistrationService) RegisterTeam(ctx context.Context, session domain.Session, leagueID int64, req domain.RegistrationRequest) (*domain.RegistrationOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if req == nil {
		return nil, domain.Validation("Registration request is required")
	}
	section := req.Section()
	log := s.logger.With().Int64("league_id", leagueID).Str("user_id", session.UserID).Str("section", string(section)).Logger()

	skillID := req.SkillLevel()
	if skillID == nil {
		return nil, domain.Validation("Please select a skill level")
	}

	var teamName string
	if regular, ok := req.(domain.RegularRegistration); ok {
		name, err := s.cleanTeamName(regular.TeamName)
		if err != nil {
			return nil, err
		}
		teamName = name
	}

	league, err := s.leagues.Get(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.Get(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	skill, err := s.skills.Get(ctx, *skillID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Validation("Invalid skill level")
		}
		return nil, err
	}

	if rejection := domain.CheckEligibility(*skill); rejection != nil {
		log.Info().Str("reason", rejection.Reason).Msg("registration rejected by policy")
		return &domain.RegistrationOutcome{Kind: domain.OutcomeRejected, Rejection: rejection}, nil
	}

	if section == domain.SectionWaitlist {
		teamName = domain.WaitlistTeamName(profile.Name)
	}

	var team *domain.Team
	err = retryOnConflict(ctx, log, "register team", func(attempt int) error {
		return s.teams.InTx(ctx, func(tx repository.TeamTx) error {
			order, err := s.order.NextDisplayOrder(ctx, tx, leagueID, section)
			if err != nil {
				return err
			}
			team, err = tx.Insert(ctx, repository.NewTeam{
				LeagueID:     leagueID,
				Name:         teamName,
				CaptainID:    profile.ID,
				Section:      section,
				DisplayOrder: order,
				SkillLevelID: skillID,
			})
			return err
		})
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create team")
		return nil, err
	}

	log = log.With().Int64("team_id", team.ID).Logger()

	// The team is committed; the membership write must not be lost to a
	// client disconnect.
	appendCtx, appendCancel := context.WithTimeout(context.WithoutCancel(ctx), constants.DatabaseTimeout)
	defer appendCancel()

	if err := s.profiles.AppendTeam(appendCtx, profile.ID, team.ID); err != nil {
		log.Error().Err(err).Msg("team created but roster membership was not recorded")
		return nil, domain.External("Your team was created but we could not add it to your profile, please contact support", err).
			With("team_id", strconv.FormatInt(team.ID, 10))
	}

	var cost *domain.CostBreakdown
	if league.Cost != nil && section.IsActive() {
		c := domain.NewCostBreakdown(*league.Cost)
		cost = &c
	}

	s.dispatcher.Dispatch(ctx, domain.RegistrationSummary{
		TeamID:       team.ID,
		TeamName:     team.Name,
		LeagueID:     league.ID,
		LeagueName:   league.Name,
		Waitlist:     !section.IsActive(),
		CaptainID:    profile.ID,
		CaptainName:  profile.Name,
		CaptainEmail: firstNonEmpty(session.Email, profile.Email),
		CaptainPhone: profile.Phone,
		RosterCount:  len(team.Roster),
		Cost:         cost,
		RegisteredAt: s.now(),
		SessionToken: session.Token,
	})

	log.Info().Int("display_order", team.DisplayOrder).Msg("team registered")

	if !section.IsActive() {
		return &domain.RegistrationOutcome{
			Kind: domain.OutcomeWaitlisted,
			Waitlist: &domain.WaitlistNotice{
				TeamID:     team.ID,
				LeagueName: league.Name,
				Message:    "You've been added to the waitlist for " + league.Name + ". We'll contact you if a spot opens up!",
			},
		}, nil
	}

	return &domain.RegistrationOutcome{
		Kind: domain.OutcomeRegistered,
		Team: &domain.TeamSummary{
			TeamID:       team.ID,
			TeamName:     team.Name,
			LeagueID:     league.ID,
			LeagueName:   league.Name,
			DisplayOrder: team.DisplayOrder,
			Cost:         cost,
		},
	}, nil
}

// cleanTeamName strips markup and surrounding whitespace and enforces the
// length limit.
func (s *RegistrationService) cleanTeamName(raw string) (string, error) {
	name := html.UnescapeString(s.sanitizer.Sanitize(strings.TrimSpace(raw)))
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.Validation("Please enter a team name")
	}
	if utf8.RuneCountInString(name) > constants.MaxTeamNameLength {
		return "", domain.Validationf("Team name must be at most %d characters", constants.MaxTeamNameLength)
	}
	return name, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
