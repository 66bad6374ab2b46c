package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Tracer hands out a tracer backed by the process-global provider.
// tracers created at package init, before Setup has run, still report
// to whatever provider Setup installs later.
func Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	return otel.Tracer(name, opts...)
}
