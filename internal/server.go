package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/auth"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/checkin"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/config"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/content"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/dashboard"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/db"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/kvstore"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/middleware"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/profile"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/readiness"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/readinessmcp"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/telemetry/metrics"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/telemetry/tracing"
	"github.com/mallikaketkar/ALIGN-APP-NEW/pkg"

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
)

const authCleanerInterval = time.Hour * 8

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string
	mcpSecret         string // shared with MCP clients, sent in X-MCP-Secret

	config       *config.Config
	dbPool       *pgxpool.Pool
	redisClient  *redis.Client
	profileStore kvstore.Store

	loginChecker    *auth.LoginChecker
	authService     *auth.Service
	profileService  *profile.Service
	checkinService  *checkin.Service
	dashboard       *dashboard.Service
	exerciseBank    *content.ExerciseBank
	tips            *content.Tips
	readinessMCPSvc *readinessmcp.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	PostgresPassword        string
	MCPSecret               string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	variant, err := readiness.ParseVariant(cfg.CheckinVariant)
	if err != nil {
		return nil, fmt.Errorf("checkin variant: %w", err)
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.PostgresPassword,
		MaxConns:       cfg.PostgresMaxConns,
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
	metricsManager := metrics.NewManager("align", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0) // set to 1 once serving

	rdb := redis.NewClient(&redis.Options{
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

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "align-backend", rdb)
	if err != nil {
		return nil, err
	}

	authService := auth.NewService(cfg.AuthSessionTTL.Duration, rdb)
	go authService.RunCleaner(ctx, authCleanerInterval)

	profileStore, err := newProfileStore(ctx, cfg, rdb)
	if err != nil {
		return nil, err
	}
	profileService := profile.NewService(profile.NewRepo(profileStore), metricsManager)

	historyRepo := checkin.NewHistoryRepo(dbPool)
	if err := historyRepo.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	checkinService, err := checkin.NewService(checkin.NewServiceParams{
		DefaultVariant: variant,
		Store:          checkin.NewSessionStore(rdb, cfg.CheckinSessionTTL.Duration),
		History:        historyRepo,
		MetricsManager: metricsManager,
		HistoryLimit:   cfg.HistoryLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("new checkin service: %w", err)
	}

	dashboardService := dashboard.NewService(historyRepo, profileService, cfg.LatestScoreCacheSizeMB)
	checkinService.AddListener(dashboardService)
	profileService.AddRenameListener(checkinService)
	profileService.AddRenameListener(dashboardService)

	exerciseBank, err := content.LoadExerciseBank()
	if err != nil {
		return nil, fmt.Errorf("load exercise bank: %w", err)
	}
	tips, err := content.LoadTips()
	if err != nil {
		return nil, fmt.Errorf("load tips: %w", err)
	}

	readinessMCPSvc, err := readinessmcp.NewService(variant)
	if err != nil {
		return nil, fmt.Errorf("new readiness mcp service: %w", err)
	}
	if params.MCPSecret == "" {
		log.Warnln("mcp secret not set, /mcp will reject all requests")
	}

	return &Server{
		config:       cfg,
		dbPool:       dbPool,
		redisClient:  rdb,
		profileStore: profileStore,
		versionInfo:  params.VersionInfo,
		mcpSecret:    params.MCPSecret,

		loginChecker:    auth.NewLoginChecker(cfg.AuthSessionTTL.Duration, rdb),
		authService:     authService,
		profileService:  profileService,
		checkinService:  checkinService,
		dashboard:       dashboardService,
		exerciseBank:    exerciseBank,
		tips:            tips,
		readinessMCPSvc: readinessMCPSvc,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func newProfileStore(ctx context.Context, cfg *config.Config, rdb *redis.Client) (kvstore.Store, error) {
	switch cfg.ProfileStore {
	case "sqlite":
		store, err := kvstore.NewSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("new sqlite profile store: %w", err)
		}
		log.Debugf("profiles stored in sqlite: %s", cfg.SQLitePath)
		return store, nil
	default:
		return kvstore.NewRedisStore(rdb), nil
	}
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
	}).Methods("GET", "POST", "OPTIONS").Name("root")
	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	profileHandler := profile.NewHandler(s.profileService, s.authService)
	profileHandler.SetupRoutes(r, reqRateLimiter, s.config.LoginRateLimitAllowedPerMin, s.metricsManager)

	checkin.NewHandler(s.checkinService).SetupRoutes(r)
	dashboard.NewHandler(s.dashboard).SetupRoutes(r)
	content.NewHandler(s.exerciseBank, s.tips).SetupRoutes(r)

	mcpHandler := otelhttp.NewHandler(
		readinessmcp.NewHTTPHandler(readinessmcp.NewServer(s.readinessMCPSvc)),
		"mcp",
	)
	r.PathPrefix("/mcp").
		Handler(middleware.RequireSecret(middleware.MCPSecretHeader, s.mcpSecret)(mcpHandler)).
		Name("mcp")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.LimitAndDrainBody(middleware.MaxRequestBodyBytes))

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

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
		promhttp.HandlerOpts{},
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

	s.metricsManager.GaugeLifeSignal.Set(1)
}

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

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if closer, ok := s.profileStore.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Errorf("failed to close profile store: %s", err)
		}
	}

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
