// Package telemetry wires OpenTelemetry tracing for formkit tools. Forms
// emit "form.validate" and "form.submit" spans through the global tracer
// provider; Setup points that provider at an OTLP/gRPC collector.
package telemetry
