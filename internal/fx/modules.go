package fx

import (
	"database/sql"

	"league-registration/internal/api"
	"league-registration/internal/config"
	"league-registration/internal/database"
	"league-registration/internal/db"
	"league-registration/internal/domain"
	"league-registration/internal/logger"
	"league-registration/internal/mailer"
	"league-registration/internal/middleware"
	"league-registration/internal/repository"
	"league-registration/internal/server"
	"league-registration/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideAmountLimits(cfg *config.Config) domain.AmountLimits {
	return cfg.AmountLimits()
}

func ProvideNotificationService(
	cfg *config.Config,
	renderer service.MessageRenderer,
	email service.EmailSender,
	admin service.AdminTrigger,
	logger zerolog.Logger,
) *service.NotificationService {
	return service.NewNotificationService(renderer, email, admin, cfg.AdminNotifyEmail, cfg.NotifyTimeout, logger)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	fx.Provide(ProvideAmountLimits),
	// repos
	fx.Provide(
		fx.Annotate(repository.NewTeamRepository, fx.As(new(service.TeamStore))),
		fx.Annotate(repository.NewUserRepository, fx.As(new(service.ProfileStore))),
		fx.Annotate(repository.NewLeagueRepository, fx.As(new(service.LeagueStore))),
		fx.Annotate(repository.NewSkillRepository, fx.As(new(service.SkillStore))),
		fx.Annotate(repository.NewPaymentRepository, fx.As(new(service.PaymentStore))),
		fx.Annotate(repository.NewCustomerRepository, fx.As(new(service.CustomerStore))),
	),
	// api clients
	fx.Provide(
		fx.Annotate(api.NewStripeClient, fx.As(new(service.PaymentGateway))),
		fx.Annotate(api.NewResendClient, fx.As(new(service.EmailSender))),
		fx.Annotate(api.NewAdminNotifier, fx.As(new(service.AdminTrigger))),
		fx.Annotate(mailer.NewRenderer, fx.As(new(service.MessageRenderer))),
	),
	// svc
	fx.Provide(service.NewOrderAssigner),
	fx.Provide(
		ProvideNotificationService,
		func(n *service.NotificationService) service.Dispatcher { return n },
	),
	fx.Provide(service.NewCustomerService),
	fx.Provide(
		service.NewPaymentService,
		func(s *service.PaymentService) server.IntentCreator { return s },
	),
	fx.Provide(
		service.NewRegistrationService,
		func(s *service.RegistrationService) server.Registrar { return s },
	),
	// server
	fx.Provide(middleware.NewAuthenticator),
	fx.Provide(server.NewRegistrationServer),
	fx.Provide(server.NewPaymentServer),
	fx.Provide(server.NewRouter),
)
