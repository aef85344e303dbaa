package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mirador_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ModerationActions counts admin moderation actions by kind.
	ModerationActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mirador_moderation_actions_total",
		Help: "Total number of admin moderation actions by kind",
	}, []string{"action"})

	// LoginFailures counts rejected login attempts by cause.
	LoginFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mirador_login_failures_total",
		Help: "Total number of failed login attempts by cause",
	}, []string{"cause"})
)

// InitMetrics creates the fiberprometheus middleware for HTTP request metrics.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
