// Package generator produces deterministic synthetic log exports for demos
// and load testing. Output follows the same column contract the report
// pipeline ingests, with traffic shaped to look like a small production
// system: business-hour peaks, service-specific latencies, and a couple of
// incident windows with elevated error rates.
package generator

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"time"

	apperrors "github.com/sasi433/log-report-automation/internal/errors"
)

// Services and their relative traffic shares. API-facing services carry more
// volume than backing ones.
var (
	services       = []string{"api", "auth", "db", "payments", "notifications", "search"}
	serviceWeights = []float64{2.5, 2.0, 1.2, 1.8, 1.0, 1.0}
)

// Level distribution: mostly INFO in steady state, shifted toward ERROR
// inside incident windows.
var (
	levels               = []string{"INFO", "WARN", "ERROR"}
	baseLevelWeights     = []float64{0.82, 0.13, 0.05}
	incidentLevelWeights = []float64{0.60, 0.20, 0.20}
)

// hourWeights biases timestamps toward business hours: quiet 0-6, busy 7-16,
// tapering 17-21 and 22-23.
var hourWeights = []float64{
	0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5,
	1.5, 1.5, 1.5, 1.5, 1.5, 1.5, 1.5, 1.5, 1.5, 1.5,
	0.9, 0.9, 0.9, 0.9, 0.9,
	0.6, 0.6,
}

// incidentHours are the hours of an incident day that get the elevated error
// mix.
var incidentHours = map[int]struct{}{10: {}, 11: {}, 12: {}, 18: {}}

// baseLatency is the per-service response time floor in milliseconds.
var baseLatency = map[string]int{
	"api":           120,
	"auth":          90,
	"db":            40,
	"payments":      180,
	"notifications": 70,
	"search":        160,
}

var (
	infoMessages = []string{
		"Request completed",
		"Cache hit",
		"Cache miss",
		"Session refreshed",
		"User profile loaded",
		"Feature flag evaluated",
		"Background job finished",
	}
	infoMessageWeights = []float64{2, 1, 1, 1, 1, 1, 1}

	warnMessages = []string{
		"Upstream latency high",
		"Retrying request",
		"Rate limit nearing threshold",
		"Queue depth rising",
		"Slow query detected",
		"Circuit breaker half-open",
	}
	warnMessageWeights = []float64{2, 2, 1, 1, 1, 1}

	errorMessages = []string{
		"Upstream timeout",
		"Database connection failed",
		"Payment provider error",
		"JWT validation failed",
		"Null reference in handler",
		"Out of memory (worker restart)",
		"503 Service unavailable",
	}
	errorMessageWeights = []float64{2, 1, 1, 1, 1, 1, 1}
)

// Options configures one synthetic batch.
type Options struct {
	// Rows is the number of log lines to produce.
	Rows int

	// Days is the length of the covered time window.
	Days int

	// Seed drives the random source; equal seeds reproduce equal batches.
	Seed int64

	// Start is the beginning of the window. The zero value means Days ago
	// at midnight UTC.
	Start time.Time
}

// Row is one synthetic log line.
type Row struct {
	Timestamp  time.Time
	Service    string
	Level      string
	Message    string
	ResponseMS int
}

// Generator produces synthetic log batches.
type Generator struct {
	logger *slog.Logger
}

// NewGenerator creates a generator.
func NewGenerator(logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{logger: logger}
}

// Generate produces opts.Rows log lines over the configured window, sorted
// ascending by timestamp. Two incident days are drawn per batch; rows landing
// in their spike hours use the elevated error mix.
func (g *Generator) Generate(opts Options) ([]Row, error) {
	if opts.Rows < 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("rows must not be negative, got %d", opts.Rows))
	}
	if opts.Days < 1 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("days must be at least 1, got %d", opts.Days))
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	start := opts.Start
	if start.IsZero() {
		now := time.Now().UTC()
		ago := now.AddDate(0, 0, -opts.Days)
		start = time.Date(ago.Year(), ago.Month(), ago.Day(), 0, 0, 0, 0, time.UTC)
	}
	start = start.UTC()

	incidentDays := make(map[int]struct{}, 2)
	for i := 0; i < 2; i++ {
		incidentDays[rng.Intn(opts.Days)] = struct{}{}
	}

	rows := make([]Row, 0, opts.Rows)
	for i := 0; i < opts.Rows; i++ {
		dayOffset := rng.Intn(opts.Days)
		hour := weightedIndex(rng, hourWeights)
		minute := rng.Intn(60)
		second := rng.Intn(60)

		ts := start.AddDate(0, 0, dayOffset).
			Add(time.Duration(hour)*time.Hour +
				time.Duration(minute)*time.Minute +
				time.Duration(second)*time.Second)

		service := services[weightedIndex(rng, serviceWeights)]

		levelWeights := baseLevelWeights
		if _, incidentDay := incidentDays[dayOffset]; incidentDay {
			if _, spikeHour := incidentHours[hour]; spikeHour {
				levelWeights = incidentLevelWeights
			}
		}
		level := levels[weightedIndex(rng, levelWeights)]

		rows = append(rows, Row{
			Timestamp:  ts,
			Service:    service,
			Level:      level,
			Message:    pickMessage(rng, level),
			ResponseMS: responseTime(rng, service, level),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})

	g.logger.Info("synthetic logs generated",
		slog.Int("rows", len(rows)),
		slog.Int("days", opts.Days),
		slog.Int64("seed", opts.Seed),
		slog.Int("incident_days", len(incidentDays)))

	return rows, nil
}

func pickMessage(rng *rand.Rand, level string) string {
	switch level {
	case "WARN":
		return warnMessages[weightedIndex(rng, warnMessageWeights)]
	case "ERROR":
		return errorMessages[weightedIndex(rng, errorMessageWeights)]
	default:
		return infoMessages[weightedIndex(rng, infoMessageWeights)]
	}
}

// responseTime models latency as the service baseline plus gaussian jitter,
// a level penalty for WARN/ERROR, and a rare long-tail outlier.
func responseTime(rng *rand.Rand, service, level string) int {
	ms := baseLatency[service] + int(math.Abs(rng.NormFloat64()*40))

	switch level {
	case "WARN":
		ms += randRange(rng, 80, 300)
	case "ERROR":
		ms += randRange(rng, 200, 1200)
	}

	if rng.Float64() < 0.02 {
		ms += randRange(rng, 1500, 4000)
	}
	return ms
}

// randRange returns a uniform value in [low, high).
func randRange(rng *rand.Rand, low, high int) int {
	return low + rng.Intn(high-low)
}

// weightedIndex draws an index with probability proportional to its weight.
func weightedIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	target := rng.Float64() * total
	for i, w := range weights {
		target -= w
		if target < 0 {
			return i
		}
	}
	return len(weights) - 1
}
