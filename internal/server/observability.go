package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jorgechato/website/internal/app/observability/metrics"
	"github.com/jorgechato/website/internal/app/observability/tracer"
	"github.com/jorgechato/website/internal/pkg/config"
)

// ObservabilityShutdownFunc is the function type returned by InitObservability
type ObservabilityShutdownFunc func(context.Context) error

// InitObservability initializes OpenTelemetry and application metrics
func InitObservability(serviceName, version string, cfg config.ObservabilityConfig, logger *zap.Logger) (ObservabilityShutdownFunc, error) {
	otelShutdown, err := tracer.InitOtelProviders(tracer.Options{
		ServiceName:  serviceName,
		Version:      version,
		MetricsAddr:  cfg.MetricsAddr,
		OTLPEndpoint: cfg.OTLPEndpoint,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics.InitAppMetrics()
	logger.Info("Observability initialized",
		zap.String("metrics_endpoint", cfg.MetricsAddr+"/metrics"),
		zap.Bool("trace_export", cfg.OTLPEndpoint != ""))

	return otelShutdown, nil
}
