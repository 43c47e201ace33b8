// Command api serves the service desk HTTP API.
//
// @title                       Service Desk API
// @version                     1.0
// @description                 Public submissions and operator triage for service requests, reviews, complaints and contact messages.
// @BasePath                    /api
// @securityDefinitions.apikey  SessionCookie
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/v4tech/servicedesk/internal/api"
	"github.com/v4tech/servicedesk/internal/api/handler"
	"github.com/v4tech/servicedesk/internal/core/domain"
	"github.com/v4tech/servicedesk/internal/core/ports"
	"github.com/v4tech/servicedesk/internal/core/service"
	"github.com/v4tech/servicedesk/internal/infrastructure/config"
	"github.com/v4tech/servicedesk/internal/infrastructure/db/memory"
	"github.com/v4tech/servicedesk/internal/infrastructure/db/mongo"
	"github.com/v4tech/servicedesk/internal/infrastructure/db/redis"
	"github.com/v4tech/servicedesk/internal/infrastructure/maintenance"
	"github.com/v4tech/servicedesk/internal/infrastructure/oracle"
	"github.com/v4tech/servicedesk/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("startup failed")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "servicedesk-api",
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

// stores are the typed collections every service is built on.
type stores struct {
	identities      ports.RecordStore[domain.Identity]
	sessions        ports.RecordStore[domain.Session]
	serviceRequests ports.RecordStore[domain.ServiceRequest]
	reviews         ports.RecordStore[domain.Review]
	complaints      ports.RecordStore[domain.Complaint]
	contact         ports.RecordStore[domain.ContactMessage]
}

func mongoStores(db *mongodriver.Database) stores {
	return stores{
		identities:      mongo.NewCollection[domain.Identity](db, mongo.CollectionUsers),
		sessions:        mongo.NewCollection[domain.Session](db, mongo.CollectionSessions),
		serviceRequests: mongo.NewCollection[domain.ServiceRequest](db, mongo.CollectionServiceRequests),
		reviews:         mongo.NewCollection[domain.Review](db, mongo.CollectionReviews),
		complaints:      mongo.NewCollection[domain.Complaint](db, mongo.CollectionComplaints),
		contact:         mongo.NewCollection[domain.ContactMessage](db, mongo.CollectionContact),
	}
}

func memoryStores() stores {
	return stores{
		identities:      memory.NewCollection[domain.Identity](),
		sessions:        memory.NewCollection[domain.Session](mongo.UniqueFields[mongo.CollectionSessions]...),
		serviceRequests: memory.NewCollection[domain.ServiceRequest](),
		reviews:         memory.NewCollection[domain.Review](),
		complaints:      memory.NewCollection[domain.Complaint](mongo.UniqueFields[mongo.CollectionComplaints]...),
		contact:         memory.NewCollection[domain.ContactMessage](),
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	checks := make(map[string]handler.HealthCheck)

	// --- Storage ---
	var st stores
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect failed")
			}
		}()
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		st = mongoStores(db)
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	case config.DriverMemory:
		st = memoryStores()
		log.Warn().Msg("using in-memory store, data is lost on exit")
	}

	// --- Stats cache ---
	var statsCache ports.StatsCache
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		statsCache = redis.NewStatsCache(rdb, cfg.Redis.StatsCacheTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("stats cache enabled")
	}

	// --- Services ---
	sessions := service.NewSessionStore(st.sessions)
	oracleClient := oracle.NewClient(cfg.Oracle.URL, &http.Client{Timeout: cfg.Oracle.Timeout}, log)
	authService, err := service.NewAuthService(sessions, st.identities, oracleClient, service.AuthConfig{
		AdminUser:  cfg.Auth.AdminUser,
		AdminPass:  cfg.Auth.AdminPass,
		SessionTTL: cfg.Auth.SessionTTL,
	}, log)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.Deps{
		Auth:            authService,
		ServiceRequests: service.NewServiceRequestService(st.serviceRequests, log),
		Reviews:         service.NewReviewService(st.reviews, log),
		Complaints:      service.NewComplaintService(st.complaints, log),
		Contact:         service.NewContactService(st.contact, log),
		Stats: service.NewStatsService(service.StatsStores{
			ServiceRequests: st.serviceRequests,
			Reviews:         st.reviews,
			Complaints:      st.complaints,
			Contact:         st.contact,
		}, statsCache, log),
		HealthChecks: checks,
	}, api.Options{
		Cookie:          handler.CookieConfig{Secure: cfg.Auth.CookieSecure, MaxAge: authService.SessionTTL()},
		CORSOrigins:     cfg.HTTP.CORSOrigins,
		PublicRateLimit: cfg.HTTP.PublicRateLimit,
		Metrics:         true,
	}, log)

	srv := &http.Server{
		Addr:    net.JoinHostPort("", cfg.Port),
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.Auth.ReapInterval > 0 {
		reaper := maintenance.NewReaper(sessions, cfg.Auth.ReapInterval, log)
		g.Go(func() error {
			reaper.Run(gctx)
			return nil
		})
	}

	return g.Wait()
}
