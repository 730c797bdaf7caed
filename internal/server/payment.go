package server

import (
	"context"
	"errors"

	"league-registration/internal/domain"
	"league-registration/internal/middleware"

	"connectrpc.com/connect"
)

type IntentCreator interface {
	CreateIntent(ctx context.Context, paymentID int64, session domain.Session) (*domain.PaymentIntent, error)
}

type PaymentServer struct {
	intents IntentCreator
}

func NewPaymentServer(intents IntentCreator) *PaymentServer {
	return &PaymentServer{intents: intents}
}

func (s *PaymentServer) CreatePaymentIntent(ctx context.Context, req *connect.Request[CreatePaymentIntentRequest]) (*connect.Response[CreatePaymentIntentResponse], error) {
	session, ok := middleware.SessionFromContext(ctx)
	if !ok {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("missing session"))
	}
	if req.Msg.PaymentID <= 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("payment_id is required"))
	}

	intent, err := s.intents.CreateIntent(ctx, req.Msg.PaymentID, session)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&CreatePaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.IntentID,
		Amount:          int64(intent.Amount),
		Currency:        intent.Currency,
	}), nil
}
