// Package metrics provides the observability hooks used by the generator and build service.
//
// Components receive a Recorder through dependency injection and default to NoopRecorder,
// so metric calls never need nil checks:
//
//	svc := build.NewService(paths).WithRecorder(metrics.NoopRecorder{})
//
// When metrics are enabled in configuration, the serve command swaps in a
// PrometheusRecorder registered on its own registry and exposes it through HTTPHandler.
package metrics
