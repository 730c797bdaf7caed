package server

import (
	"context"
	"errors"

	"league-registration/internal/domain"
	"league-registration/internal/middleware"

	"connectrpc.com/connect"
)

type Registrar interface {
	RegisterTeam(ctx context.Context, session domain.Session, leagueID int64, req domain.RegistrationRequest) (*domain.RegistrationOutcome, error)
}

type RegistrationServer struct {
	registrar Registrar
}

func NewRegistrationServer(registrar Registrar) *RegistrationServer {
	return &RegistrationServer{registrar: registrar}
}

func (s *RegistrationServer) RegisterTeam(ctx context.Context, req *connect.Request[RegisterTeamRequest]) (*connect.Response[RegisterTeamResponse], error) {
	session, ok := middleware.SessionFromContext(ctx)
	if !ok {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("missing session"))
	}
	if req.Msg.LeagueID <= 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("league_id is required"))
	}

	outcome, err := s.registrar.RegisterTeam(ctx, session, req.Msg.LeagueID, req.Msg.toDomain())
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(fromOutcome(outcome)), nil
}
