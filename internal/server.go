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
	"go.uber.org/multierr"

	"github.com/2beens/fitprogress/internal/cache"
	"github.com/2beens/fitprogress/internal/charts"
	"github.com/2beens/fitprogress/internal/config"
	"github.com/2beens/fitprogress/internal/db"
	"github.com/2beens/fitprogress/internal/middleware"
	"github.com/2beens/fitprogress/internal/progress"
	"github.com/2beens/fitprogress/internal/telemetry/metrics"
	"github.com/2beens/fitprogress/internal/telemetry/tracing"
	"github.com/2beens/fitprogress/pkg"
)

const (
	megabyte        = 1024 * 1024
	shutdownTimeout = 15 * time.Second
	serviceName     = "fitprogress"
)

// Server is the entries api, with its prometheus metrics served on a separate listener.
type Server struct {
	apiHttpServer     *http.Server
	apiListener       net.Listener
	metricsHttpServer *http.Server
	metricsListener   net.Listener

	apiToken    string // protects writes to the entries api
	versionInfo string
	config      *config.Config

	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	rateLimiter middleware.RequestRateLimiter

	progressService *progress.Service
	chartRenderer   *charts.EntriesRenderer
	chartCache      *cache.ChartCache

	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	APIToken                string
	VersionInfo             string
	RedisPassword           string
	DBPassword              string
	HoneycombTracingEnabled bool
}

func NewServer(ctx context.Context, params NewServerParams) (*Server, error) {
	cfg := params.Config

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.DBPassword,
		MaxConns:       cfg.PostgresMaxConns,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}
	if err := dbPool.Ping(ctx); err != nil {
		// the pool reconnects on its own, the service can start before postgres does
		log.Warnf("failed to ping db: %s", err)
	}

	promRegistry := metrics.SetupPrometheus(
		pgxpoolprometheus.NewCollector(dbPool, map[string]string{"db_name": cfg.PostgresDBName}),
	)
	metricsManager := metrics.NewManager(serviceName, "main", promRegistry)

	rdb := newRedisClient(ctx, cfg, params.RedisPassword)

	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, serviceName, rdb)
	if err != nil {
		dbPool.Close()
		return nil, err
	}

	dashboardCache := cache.NewDashboardCache(rdb, time.Duration(cfg.DashboardCacheTTLSeconds)*time.Second)
	entriesRepo := progress.NewRepo(dbPool)

	return &Server{
		config:      cfg,
		apiToken:    params.APIToken,
		versionInfo: params.VersionInfo,

		dbPool:      dbPool,
		redisClient: rdb,
		rateLimiter: redis_rate.NewLimiter(rdb),

		progressService: progress.NewService(entriesRepo, dashboardCache, metricsManager),
		chartRenderer:   charts.NewEntriesRenderer(cfg.ChartWidth, cfg.ChartHeight, metricsManager),
		chartCache:      cache.NewChartCache(cfg.ChartCacheSizeMB*megabyte, cache.DefaultChartTTL),

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func newRedisClient(ctx context.Context, cfg *config.Config, password string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: password,
		DB:       0,
	})
	if pong, err := rdb.Ping(ctx).Result(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", pong)
	}
	return rdb
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware(serviceName + "-router"))

	r.HandleFunc("/", s.handleRoot).Methods("GET", "OPTIONS").Name("root")
	r.HandleFunc("/version", s.handleVersion).Methods("GET", "OPTIONS").Name("version")

	progress.NewHandler(s.progressService, s.chartRenderer, s.chartCache).SetupRoutes(r)

	// order matters: recovery wraps everything, auth runs after the rate limit
	r.Use(
		middleware.PanicRecovery(s.metricsManager),
		middleware.LogRequest(),
		middleware.RequestMetrics(s.metricsManager),
		middleware.Cors(s.config.CorsAllowedOrigins),
		middleware.RateLimit(s.rateLimiter, "api", s.config.RateLimitAllowedPerMin, s.metricsManager),
		middleware.NewAuthMiddlewareHandler(s.apiToken).AuthCheck(),
		middleware.LimitAndDrainRequest(middleware.DefaultMaxBodyBytes),
	)

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteResponse(w, pkg.ContentType.Text, "I'm OK, thanks", http.StatusOK)
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteResponse(w, pkg.ContentType.Text, s.versionInfo, http.StatusOK)
}

// Serve binds the api and the metrics listeners and serves them in the background.
// Port 0 picks a free port, see Addr.
func (s *Server) Serve(host string, port int) error {
	apiListener, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return fmt.Errorf("listen api: %w", err)
	}

	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	metricsListener, err := net.Listen("tcp", metricsAddr)
	if err != nil {
		_ = apiListener.Close()
		return fmt.Errorf("listen metrics: %w", err)
	}

	s.apiListener = apiListener
	s.apiHttpServer = &http.Server{
		Handler:           s.routerSetup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		ConnState:         s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}))
	s.metricsListener = metricsListener
	s.metricsHttpServer = &http.Server{
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go serveListener("api", s.apiHttpServer, apiListener)
	go serveListener("metrics", s.metricsHttpServer, metricsListener)

	s.metricsManager.GaugeLifeSignal.Set(1)
	return nil
}

func serveListener(name string, server *http.Server, listener net.Listener) {
	log.Infof(" > %s listening on: [%s]", name, listener.Addr())
	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Errorf("%s server stopped: %s", name, err)
	}
}

// Addr is the address the api listens on, nil before Serve.
func (s *Server) Addr() net.Addr {
	if s.apiListener == nil {
		return nil
	}
	return s.apiListener.Addr()
}

// GracefulShutdown stops both listeners, waiting for in-flight requests, then releases redis, db and tracing.
func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var err error
	if s.apiHttpServer != nil {
		err = multierr.Append(err, wrapErr("shutdown api server", s.apiHttpServer.Shutdown(ctx)))
	}
	if s.metricsHttpServer != nil {
		err = multierr.Append(err, wrapErr("shutdown metrics server", s.metricsHttpServer.Shutdown(ctx)))
	}
	if s.otelShutdown != nil {
		s.otelShutdown()
	}
	if s.redisClient != nil {
		err = multierr.Append(err, wrapErr("close redis client", s.redisClient.Close()))
	}
	if s.dbPool != nil {
		s.dbPool.Close() // waits for acquired conns
	}

	if !sentry.Flush(5 * time.Second) {
		log.Debugln("sentry flush timed out")
	}

	if err != nil {
		log.Errorf("graceful shutdown: %s", err)
		return err
	}
	log.Warnln("server shut down")
	return nil
}

func wrapErr(msg string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Inc()
	case http.StateClosed, http.StateHijacked:
		s.metricsManager.GaugeRequests.Dec()
	}
}
