package services

import (
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	MONITORING_SVC          = "monitoring_svc"
	SERVICE_NAME            = "popmath_backend"
	DEFAULT_PROMETHEUS_PORT = 2112
)

// HTTP Metrics
var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"endpoint", "method", "status"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Game Metrics
var (
	answersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_answers_total",
			Help: "Answers graded, by outcome",
		},
		[]string{"outcome"},
	)

	gamesStartedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "game_sessions_started_total",
			Help: "Game sessions started",
		},
	)

	gameOversTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "game_overs_total",
			Help: "Sessions ended by running out of lives",
		},
	)

	hintsUsedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "game_hints_used_total",
			Help: "Hints bought with score",
		},
	)

	questionsSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "game_questions_skipped_total",
			Help: "Questions skipped at the cost of a life",
		},
	)

	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "game_sessions_active",
			Help: "Currently active game sessions",
		},
	)
)

func recordAnswer(correct bool) {
	outcome := "incorrect"
	if correct {
		outcome = "correct"
	}
	answersTotal.WithLabelValues(outcome).Inc()
}

func recordGameStarted()     { gamesStartedTotal.Inc() }
func recordGameOver()        { gameOversTotal.Inc() }
func recordHintUsed()        { hintsUsedTotal.Inc() }
func recordQuestionSkipped() { questionsSkippedTotal.Inc() }

func setActiveSessions(n int) { activeSessions.Set(float64(n)) }

type MonitoringService struct {
	appContext.DefaultService

	port     int
	register *prometheus.Registry

	server *fiber.App
}

func (svc *MonitoringService) Id() string {
	return MONITORING_SVC
}

func (svc *MonitoringService) Start() error {
	portStr := os.Getenv("PROMETHEUS_PORT")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = DEFAULT_PROMETHEUS_PORT
	}
	svc.port = port

	reg := prometheus.NewRegistry()

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	reg.MustRegister(
		httpRequestsTotal,
		httpRequestDurationSeconds,
		answersTotal,
		gamesStartedTotal,
		gameOversTotal,
		hintsUsedTotal,
		questionsSkippedTotal,
		activeSessions,
	)

	svc.register = reg

	config := fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		},
	}

	svc.server = fiber.New(config)
	svc.server.Use(recover.New())

	svc.server.Get("/metrics", svc.metricsHandler)
	svc.server.Get("/health", svc.healthHandler)

	// The main HTTP service is the blocking tail of the runtime; the metrics
	// app listens on its own goroutine so later services still start.
	go func() {
		log.Info().Int("port", svc.port).Msg("Prometheus metrics server started")
		if err := svc.server.Listen(fmt.Sprintf(":%v", svc.port)); err != nil {
			log.Error().Err(err).Msg("Metrics server stopped")
		}
	}()
	return nil
}

func (svc *MonitoringService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *MonitoringService) metricsHandler(c *fiber.Ctx) error {
	handler := promhttp.HandlerFor(svc.register, promhttp.HandlerOpts{})
	return adaptor.HTTPHandler(handler)(c)
}

func (svc *MonitoringService) healthHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":    "healthy",
		"service":   SERVICE_NAME,
		"timestamp": time.Now().Unix(),
	})
}

// MonitoringMiddleware records request counts and latencies on the main app.
func MonitoringMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		method := c.Method()

		err := c.Next()

		endpoint := c.Route().Path
		duration := time.Since(start)
		status := strconv.Itoa(c.Response().StatusCode())

		httpRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
		httpRequestDurationSeconds.WithLabelValues(endpoint, method, status).Observe(duration.Seconds())

		return err
	}
}
