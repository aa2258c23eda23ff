// Package logging centralizes construction of the go.uber.org/zap loggers
// used across fragid: a production JSON logger for cmd/fragid, and a no-op
// logger for tests and library callers that don't want log output. Callers
// receive a *zap.SugaredLogger via constructor injection (pipeline.Options)
// rather than through a package-level global, so a
// concurrent identification run never contends on shared mutable logger
// state.
package logging
