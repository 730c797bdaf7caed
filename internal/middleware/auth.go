package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"league-registration/internal/config"
	"league-registration/internal/domain"

	"connectrpc.com/connect"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const sessionKey contextKey = "session"

var errMissingToken = errors.New("missing bearer token")

// Claims are the session token claims issued by the auth provider.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 session tokens.
type Authenticator struct {
	secret []byte
	logger zerolog.Logger
}

func NewAuthenticator(cfg *config.Config, logger zerolog.Logger) *Authenticator {
	return &Authenticator{secret: []byte(cfg.JWTSecret), logger: logger}
}

// Verify parses a raw token into a session. The subject must be a UUID.
func (a *Authenticator) Verify(token string) (domain.Session, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return domain.Session{}, fmt.Errorf("invalid session token: %w", err)
	}

	sub, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Session{}, fmt.Errorf("invalid session subject: %w", err)
	}

	return domain.Session{
		UserID: sub.String(),
		Email:  claims.Email,
		Token:  token,
	}, nil
}

// UnaryInterceptor rejects handler calls without a valid bearer token and
// stores the session in the context for the handler.
func (a *Authenticator) UnaryInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				return next(ctx, req)
			}

			token, err := bearerToken(req.Header().Get("Authorization"))
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			session, err := a.Verify(token)
			if err != nil {
				a.logger.Debug().Err(err).
					Str("request_id", GetRequestID(ctx)).
					Str("procedure", req.Spec().Procedure).
					Msg("rejected session token")
				return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("invalid or expired session"))
			}

			return next(WithSession(ctx, session), req)
		}
	}
}

func bearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errMissingToken
	}
	return strings.TrimSpace(token), nil
}

func WithSession(ctx context.Context, s domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(sessionKey).(domain.Session)
	return s, ok
}
