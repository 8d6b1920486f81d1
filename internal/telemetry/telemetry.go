// Package telemetry wires zerolog logging and a last-search statistics
// record a caller can fill in and log after a decision; no planner in
// this module produces a SearchStats value itself.
package telemetry

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger configures zerolog with pretty console output, matching
// the verbosity toggle used throughout this codebase's CLI tooling.
func NewLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// NewStructuredLogger configures zerolog for structured (JSON)
// output, for non-interactive or piped invocations.
func NewStructuredLogger(debug bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stderr).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// SearchStats records one decision call's search footprint so a
// caller can log or display it without the planner itself owning any
// persistent state across calls.
type SearchStats struct {
	ScannedBranches int
	Elapsed         time.Duration
	NudgeHits       int
	CacheHits       int
	CacheMisses     int
	DPUsed          bool
}

// Log emits a single structured event summarizing the stats.
func (s SearchStats) Log(logger zerolog.Logger) {
	logger.Debug().
		Int("scanned_branches", s.ScannedBranches).
		Dur("elapsed", s.Elapsed).
		Int("nudge_hits", s.NudgeHits).
		Int("cache_hits", s.CacheHits).
		Int("cache_misses", s.CacheMisses).
		Bool("dp_used", s.DPUsed).
		Msg("search stats")
}

// LogFallbackEmptyLegal records the pathological case where a
// planner was asked to choose among zero legal moves — a caller bug
// upstream, never a planner bug — so it can be traced rather than
// silently producing a zero-value card.
func LogFallbackEmptyLegal(logger zerolog.Logger, seat int) {
	logger.Warn().Int("seat", seat).Msg("fallback_empty_legal")
}

// LogConfigClamp records that an environment-supplied weight was
// clamped into its valid range rather than rejected outright.
func LogConfigClamp(logger zerolog.Logger, key string, raw, clamped float64) {
	logger.Warn().
		Str("key", key).
		Float64("raw", raw).
		Float64("clamped", clamped).
		Msg("config value clamped to valid range")
}
