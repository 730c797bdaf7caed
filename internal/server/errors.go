package server

import (
	"context"
	"errors"

	"league-registration/internal/domain"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
	"google.golang.org/protobuf/types/known/structpb"
)

// toConnectError maps a service error to a connect error. Only the user-facing
// message of a domain error reaches the client.
func toConnectError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	// A domain error decides the code even when it wraps a context error, so
	// its details reach the caller.
	kind := domain.KindOf(err)
	if kind == nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return connect.NewError(connect.CodeDeadlineExceeded, errors.New("request timed out"))
		case errors.Is(err, context.Canceled):
			return connect.NewError(connect.CodeCanceled, errors.New("request canceled"))
		}
	}

	code := codeFor(kind)
	if code == connect.CodeInternal {
		zerolog.Ctx(ctx).Error().Err(err).Msg("unhandled error")
	}

	cerr := connect.NewError(code, errors.New(domain.Message(err, "Internal server error")))

	var derr *domain.Error
	if errors.As(err, &derr) && len(derr.Context) > 0 {
		fields := make(map[string]any, len(derr.Context))
		for k, v := range derr.Context {
			fields[k] = v
		}
		if fieldsMsg, err := structpb.NewStruct(fields); err == nil {
			if detail, err := connect.NewErrorDetail(fieldsMsg); err == nil {
				cerr.AddDetail(detail)
			}
		}
	}
	return cerr
}

func codeFor(kind error) connect.Code {
	switch kind {
	case domain.ErrValidation:
		return connect.CodeInvalidArgument
	case domain.ErrAuthorization:
		return connect.CodePermissionDenied
	case domain.ErrNotFound:
		return connect.CodeNotFound
	case domain.ErrConflict:
		return connect.CodeAborted
	case domain.ErrExternalService:
		return connect.CodeUnavailable
	default:
		return connect.CodeInternal
	}
}
