// Package otel provides OpenTelemetry metric exporter bindings for goACL
// operation counters.
//
// [NewOTelExporter] registers an Int64ObservableCounter per goACL metric plus
// one for dropped audit events. A single callback reads
// [goACL.ACL.MetricsSnapshot] on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate ACL state.
package otel
