package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/qsdiary/internal/catalog"
	"github.com/2beens/qsdiary/internal/config"
	"github.com/2beens/qsdiary/internal/db"
	"github.com/2beens/qsdiary/internal/diary"
	"github.com/2beens/qsdiary/internal/middleware"
	"github.com/2beens/qsdiary/internal/nextsets"
	"github.com/2beens/qsdiary/internal/records"
	"github.com/2beens/qsdiary/internal/sources"
	"github.com/2beens/qsdiary/internal/telemetry/metrics"
	"github.com/2beens/qsdiary/internal/telemetry/tracing"
	"github.com/2beens/qsdiary/internal/users"
	"github.com/2beens/qsdiary/internal/workouts"
	"github.com/2beens/qsdiary/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	apiToken          string // shared with the gateway in front of the service
	versionInfo       string

	config   *config.Config
	dbPool   *pgxpool.Pool
	catalog  *catalog.Catalog
	fetcher  *sources.Fetcher
	ingester *sources.Ingester

	workoutsRepo *workouts.Repo
	usersRepo    *users.Repo

	redisClient *redis.Client

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()

	backgroundWG sync.WaitGroup
}

type NewServerParams struct {
	Config                  *config.Config
	APIToken                string
	VersionInfo             string
	DBPassword              string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cat, err := loadCatalog(params.Config.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load exercise catalog: %w", err)
	}
	log.Debugf("exercise catalog loaded, %d exercises", cat.Len())

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBPassword:     params.DBPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}
	if err := db.Migrate(ctx, dbPool); err != nil {
		return nil, err
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0,
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "qsdiary-backend", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	workoutsRepo := workouts.NewRepo(dbPool)
	usersRepo := users.NewRepo(dbPool)
	fetcher := sources.NewFetcher(tracedHttpClient, rdb, metricsManager)

	s := &Server{
		config:      params.Config,
		dbPool:      dbPool,
		catalog:     cat,
		fetcher:     fetcher,
		apiToken:    params.APIToken,
		versionInfo: params.VersionInfo,

		workoutsRepo: workoutsRepo,
		usersRepo:    usersRepo,
		redisClient:  rdb,

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if params.Config.FitocracyBaseURL != "" {
		s.ingester = sources.NewIngester(
			workoutsRepo,
			usersRepo,
			sources.NewFitocracy(params.Config.FitocracyBaseURL, fetcher, cat),
			cat,
			metricsManager,
			params.Config.IngestInterval.Duration,
			params.Config.IngestLookback.Duration,
		)
	} else {
		log.Warnln("fitocracy base url not set, ingestion disabled")
	}

	return s, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnf("close catalog file: %s", err)
		}
	}()

	return catalog.Load(f)
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")

	workouts.NewHandler(s.workoutsRepo, s.catalog).SetupRoutes(r)
	users.NewHandler(s.usersRepo).SetupRoutes(r)
	records.NewHandler(
		records.NewService(s.workoutsRepo, s.catalog, s.metricsManager),
	).SetupRoutes(r)
	nextsets.NewHandler(
		s.usersRepo,
		nextsets.NewService(s.workoutsRepo, s.catalog),
	).SetupRoutes(r)
	diary.NewHandler(
		s.usersRepo,
		diary.NewAggregator(
			s.workoutsRepo,
			sources.NewMyFitnessPal(s.config.MyFitnessPalBaseURL, s.fetcher),
			sources.NewTopLogger(s.config.TopLoggerBaseURL, s.fetcher),
			sources.NewRunDouble(s.config.RunDoubleBaseURL, s.fetcher),
			s.metricsManager,
		),
	).SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.NewAuthMiddlewareHandler(s.apiToken).AuthCheck())
	r.Use(middleware.RateLimit(
		redis_rate.NewLimiter(s.redisClient),
		"main",
		s.config.RequestsRateLimitPerMin,
		s.metricsManager,
	))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "ok "+s.versionInfo)
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{Registry: s.promRegistry},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	if s.ingester != nil {
		s.backgroundWG.Add(1)
		go func() {
			defer s.backgroundWG.Done()
			s.ingester.Run(ctx)
		}()
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// GracefulShutdown expects the ctx given to Serve to be cancelled already.
func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	s.backgroundWG.Wait()
	log.Debugln("background workers stopped")

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close()
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
