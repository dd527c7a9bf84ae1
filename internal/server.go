package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
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

	"github.com/2beens/bodix/internal/config"
	"github.com/2beens/bodix/internal/db"
	"github.com/2beens/bodix/internal/kvstore"
	"github.com/2beens/bodix/internal/middleware"
	"github.com/2beens/bodix/internal/pedometer"
	"github.com/2beens/bodix/internal/scheduler"
	"github.com/2beens/bodix/internal/steps"
	"github.com/2beens/bodix/internal/telemetry/metrics"
	"github.com/2beens/bodix/internal/telemetry/tracing"
)

const kvKeyPrefix = "bodix:"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	appSecretHash     string // bcrypt hash of the secret the ios app sends in X-BODIX-TOKEN

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client // nil when running on the in-memory store

	samplesRepo  *pedometer.Repo
	source       *pedometer.Source
	cachedSource *pedometer.CachedSource
	aggregator   *steps.Aggregator
	scheduler    *scheduler.Scheduler

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	AppSecretHash           string
	RedisPassword           string
	PostgresUser            string
	PostgresPassword        string
	HoneycombTracingEnabled bool
	// InMemoryStore keeps settings and streak in process memory instead of
	// redis, and disables rate limiting. Meant for local development.
	InMemoryStore bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         params.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "bodix", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0) // set to 1 once both servers listen

	var (
		rdb     *redis.Client
		kvStore kvstore.Store
	)
	if params.InMemoryStore {
		log.Warnln("using in-memory key-value store, settings and streak will not survive a restart")
		kvStore = kvstore.NewMemoryStore()
	} else {
		rdb = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})

		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
		kvStore = kvstore.NewRedisStore(rdb, kvKeyPrefix)
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "bodix-backend", rdb)
	if err != nil {
		return nil, err
	}

	samplesRepo := pedometer.NewRepo(dbPool)
	if err := samplesRepo.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate samples repo: %w", err)
	}

	source := pedometer.NewSource(samplesRepo, pedometer.NewAuthorizationTracker(kvStore))
	cachedSource := pedometer.NewCachedSource(
		source,
		cfg.SourceCacheSizeMB,
		cfg.SourceCacheTTLSeconds,
		metricsManager,
	)
	aggregator := steps.NewAggregator(
		kvStore,
		cachedSource,
		metricsManager,
		loc,
		cfg.QueryTimeout.Duration,
	)

	s := &Server{
		config:        cfg,
		dbPool:        dbPool,
		redisClient:   rdb,
		appSecretHash: params.AppSecretHash,

		samplesRepo:  samplesRepo,
		source:       source,
		cachedSource: cachedSource,
		aggregator:   aggregator,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if err := s.schedulerSetup(loc); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Server) schedulerSetup(loc *time.Location) error {
	s.scheduler = scheduler.New(loc, 0)

	streakJob := scheduler.NewStreakJob(s.aggregator)
	if err := s.scheduler.Add("streak-check", s.config.StreakCheckCron, streakJob.RunOnce); err != nil {
		return err
	}

	if s.config.SampleRetentionDays == 0 {
		log.Debugln("sample retention not set, samples are kept forever")
		return nil
	}
	pruneJob, err := scheduler.NewPruneJob(s.samplesRepo, s.config.SampleRetentionDays, loc)
	if err != nil {
		return fmt.Errorf("new prune job: %w", err)
	}
	return s.scheduler.Add("samples-prune", s.config.SamplePruneCron, pruneJob.RunOnce)
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("bodix-router"))

	pedometerHandler := pedometer.NewHandler(
		s.samplesRepo,
		s.source,
		s.cachedSource,
		s.metricsManager,
	)
	pedometerHandler.SetupRoutes(r)

	var reqRateLimiter middleware.RequestRateLimiter
	if s.redisClient != nil {
		reqRateLimiter = redis_rate.NewLimiter(s.redisClient)
	}
	stepsHandler := steps.NewHandler(
		s.aggregator,
		s.metricsManager,
		s.config.LiveUpdatesInterval.Duration,
		s.config.AllowedOrigins,
	)
	stepsHandler.SetupRoutes(r, reqRateLimiter, s.config.SettingsRateLimitPerMin)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.appSecretHash)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:     router,
		Addr:        ipAndPort,
		ReadTimeout: time.Minute,
		// no WriteTimeout, it would cut the websocket streams
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
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

	// first pedometer query is slow on a cold pool
	go s.aggregator.Prewarm(ctx)

	s.scheduler.Start()
	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.scheduler != nil {
		select {
		case <-s.scheduler.Stop().Done():
			log.Trace("scheduler stopped ...")
		case <-ctx.Done():
			log.Warnln("scheduler jobs still running, moving on")
		}
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}
