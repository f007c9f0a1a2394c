package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-data/external/apifootball"
	"github.com/riskibarqy/football-data/internal/config"
	"github.com/riskibarqy/football-data/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/football-data/internal/interfaces/httpapi"
	"github.com/riskibarqy/football-data/internal/platform/cache"
	"github.com/riskibarqy/football-data/internal/platform/logging"
	"github.com/riskibarqy/football-data/internal/platform/resilience"
	"github.com/riskibarqy/football-data/internal/usecase"
)

// Application wires the storage, provider gateway, services and HTTP
// surface into one runnable unit.
type Application struct {
	cfg     config.Config
	logger  *logging.Logger
	db      *sqlx.DB
	store   *postgres.Store
	browser *usecase.Browser
	updates *usecase.UpdateService
	server  *http.Server
}

func New(cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg, logger)
	if err != nil {
		return nil, err
	}

	store := postgres.NewStore(db)

	// One response cache for the process; its TTL outlives any single
	// sync run, so a manual re-trigger within the hour reuses payloads.
	apiCache := cache.NewStore(cfg.APIFootballCacheTTL)

	updates := usecase.NewUpdateService(usecase.UpdateConfig{
		Tx:               &txRunner{store: store},
		ProviderFactory:  providerFactory(cfg, apiCache, logger),
		Roster:           cfg.Roster,
		CallBudget:       cfg.APIFootballCallBudget,
		Pause:            cfg.SyncPause,
		ReferenceMaxAge:  cfg.ReferenceRetentionMaxAge,
		SquadMaxAge:      cfg.SquadRetentionMaxAge,
		IsRecordConflict: postgres.IsConstraintViolation,
		Logger:           logger,
	})

	browser, err := usecase.NewBrowser(usecase.BrowserConfig{
		Repos:  usecaseRepositories(store.Repositories()),
		Logger: logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	handler := httpapi.NewHandler(browser, updates, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	if cfg.HTTPAddr == "" {
		browser.Close()
		_ = db.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Application{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		store:   store,
		browser: browser,
		updates: updates,
		server:  server,
	}, nil
}

func providerFactory(cfg config.Config, apiCache *cache.Store, logger *logging.Logger) func(*usecase.Session) usecase.SyncProvider {
	return func(session *usecase.Session) usecase.SyncProvider {
		return apifootball.NewClient(apifootball.ClientConfig{
			BaseURL:     cfg.APIFootballBaseURL,
			Key:         cfg.APIFootballKey,
			Host:        cfg.APIFootballHost,
			Timeout:     cfg.APIFootballTimeout,
			MaxAttempts: cfg.APIFootballMaxRetries,
			Timezone:    cfg.APIFootballTimezone,
			Logger:      logger,
			Cache:       apiCache,
			Session:     session,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.CircuitEnabled,
				FailureThreshold: cfg.CircuitFailureCount,
				OpenTimeout:      cfg.CircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.CircuitHalfOpenMaxReq,
			},
		})
	}
}

func (a *Application) HTTPServer() *http.Server {
	return a.server
}

func (a *Application) Updates() *usecase.UpdateService {
	return a.updates
}

func (a *Application) Close() error {
	a.browser.Close()
	return a.db.Close()
}
