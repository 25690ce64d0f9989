package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/authkit"
	"github.com/dmitrymomot/authkit/locales"
	"github.com/dmitrymomot/authkit/migrations"
	"github.com/dmitrymomot/authkit/modules/account"
	"github.com/dmitrymomot/authkit/pkg/config"
	"github.com/dmitrymomot/authkit/pkg/httpserver"
	"github.com/dmitrymomot/authkit/pkg/i18n"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/pg"
	"github.com/dmitrymomot/authkit/pkg/redis"
	"github.com/dmitrymomot/authkit/pkg/session"
	"github.com/dmitrymomot/authkit/svc/auth"
	"github.com/dmitrymomot/authkit/views"
)

type appConfig struct {
	Env           string        `env:"APP_ENV" envDefault:"development"`
	SecureCookies bool          `env:"SECURE_COOKIES" envDefault:"false"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"168h"`
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var appCfg appConfig
	config.MustLoad(&appCfg)

	logOpts := []logger.Option{logger.WithService("authkit")}
	if appCfg.Env == "development" {
		logOpts = append(logOpts, logger.WithDevelopment())
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	if err := run(ctx, appCfg, log); err != nil {
		log.ErrorContext(ctx, "server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg appConfig, log *slog.Logger) error {
	var pgCfg pg.Config
	config.MustLoad(&pgCfg)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, migrations.FS, pgCfg, log); err != nil {
		return err
	}

	var redisCfg redis.Config
	config.MustLoad(&redisCfg)

	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	translator, err := i18n.NewTranslator(ctx, i18n.NewYAMLAdapter(locales.FS), i18n.WithLogger(log))
	if err != nil {
		return err
	}

	var tokenCfg auth.TokenConfig
	config.MustLoad(&tokenCfg)

	issuer, err := auth.NewTokenIssuer(tokenCfg)
	if err != nil {
		return err
	}

	authSvc := auth.NewService(auth.NewPGStorage(pool), auth.WithLogger(log))

	sessions := session.NewManager(
		session.NewRedisStore(redisClient),
		session.WithTTL(appCfg.SessionTTL),
		session.WithSecureCookies(appCfg.SecureCookies),
	)

	moduleOpts := []account.Option{
		account.WithLogger(log),
		account.WithSecureCookies(appCfg.SecureCookies),
	}
	moduleOpts = append(moduleOpts, oauthProviders(ctx, log)...)

	accountModule := account.NewModule(authSvc, issuer, sessions, translator, moduleOpts...)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/readyz", httpserver.HealthCheckHandler(ctx, log,
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	))

	r.Group(func(r chi.Router) {
		r.Use(i18n.Middleware(translator))
		r.Use(authkit.Negotiate(views.Layout(translator), authkit.WithLogger(log)))
		r.Mount("/", accountModule.Router())
	})

	var httpCfg httpserver.Config
	config.MustLoad(&httpCfg)

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

// oauthProviders builds adapters for every provider whose environment is
// configured. A provider with missing settings is skipped, not fatal.
func oauthProviders(ctx context.Context, log *slog.Logger) []account.Option {
	var opts []account.Option

	var googleCfg auth.GoogleConfig
	if err := config.Load(&googleCfg); err == nil {
		opts = append(opts, account.WithProvider(auth.NewGoogleAdapter(googleCfg)))
	} else {
		log.InfoContext(ctx, "google oauth disabled", logger.Provider(auth.ProviderGoogle))
	}

	var githubCfg auth.GithubConfig
	if err := config.Load(&githubCfg); err == nil {
		opts = append(opts, account.WithProvider(auth.NewGithubAdapter(githubCfg)))
	} else {
		log.InfoContext(ctx, "github oauth disabled", logger.Provider(auth.ProviderGithub))
	}

	return opts
}
