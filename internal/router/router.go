package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appointmenth "github.com/sunrisemc/booking-api/internal/handler/appointment"
	authh "github.com/sunrisemc/booking-api/internal/handler/auth"
	catalogh "github.com/sunrisemc/booking-api/internal/handler/catalog"
	chath "github.com/sunrisemc/booking-api/internal/handler/chat"
	healthh "github.com/sunrisemc/booking-api/internal/handler/health"
	wizardh "github.com/sunrisemc/booking-api/internal/handler/wizard"
	"github.com/sunrisemc/booking-api/internal/middleware"
)

type Router struct {
	engine       *gin.Engine
	auth         *middleware.AuthMiddleware
	authH        *authh.Handler
	appointmentH *appointmenth.Handler
	catalogH     *catalogh.Handler
	chatH        *chath.Handler
	wizardH      *wizardh.Handler
	healthH      *healthh.Handler
	metrics      *routerMetrics
	metricsPath  string
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type Config struct {
	RateLimit      middleware.RateLimiterConfig
	CORS           middleware.CORSConfig
	MetricsPrefix  string
	MetricsPath    string
	RequestTimeout time.Duration
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authh.Handler,
	appointmentH *appointmenth.Handler,
	catalogH *catalogh.Handler,
	chatH *chath.Handler,
	wizardH *wizardh.Handler,
	healthH *healthh.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 30 * time.Second
	}
	if config.MetricsPath == "" {
		config.MetricsPath = "/metrics"
	}

	r := &Router{
		engine:       engine,
		auth:         auth,
		authH:        authH,
		appointmentH: appointmentH,
		catalogH:     catalogH,
		chatH:        chatH,
		wizardH:      wizardH,
		healthH:      healthH,
		metrics:      initRouterMetrics(config.MetricsPrefix),
		metricsPath:  config.MetricsPath,
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.RequestTimeout}),
	)

	engine.Use(middleware.CORS(config.CORS))

	rateLimiter := middleware.NewRateLimiter(config.RateLimit)
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	r.engine.GET(r.metricsPath, gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api")

	r.healthH.RegisterRoutes(api)

	// Public routes. Booking and chat accept an optional token so logged-in
	// patients get their details prefilled.
	public := api.Group("")
	public.Use(r.auth.OptionalAuthenticate())
	{
		r.catalogH.RegisterRoutes(public)
		r.appointmentH.RegisterRoutes(public)
		r.chatH.RegisterRoutes(public)
		r.wizardH.RegisterRoutes(public)
		r.authH.RegisterRoutes(public)
	}

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	{
		r.authH.RegisterProtectedRoutes(protected)
		r.appointmentH.RegisterProtectedRoutes(protected, r.auth.RequireStaff())
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	if prefix == "" {
		prefix = "booking_api"
	}
	return &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	prometheus.MustRegister(r.metrics.requestDuration, r.metrics.requestTotal, r.metrics.errorTotal)

	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
