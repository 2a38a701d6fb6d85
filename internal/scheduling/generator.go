package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MetricsRecorder receives one observation per generation attempt. A nil
// recorder is valid; Generator treats it as a no-op.
type MetricsRecorder interface {
	ObserveSolve(outcome string, duration time.Duration)
}

// Generator orchestrates the full pipeline: Assembler -> Validator ->
// Encoder -> Prober -> Compiler -> SAT Core -> Decoder. It holds no
// per-request state between calls; SchedulingInput, the encoding, and the
// solver are all constructed fresh and dropped on return.
type Generator struct {
	assembler *Assembler
	logger    *zap.Logger
	metrics   MetricsRecorder
	debug     bool
}

// NewGenerator constructs a Generator over the given persistence
// collaborator.
func NewGenerator(assembler *Assembler, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{assembler: assembler, logger: logger}
}

// WithMetrics attaches a metrics recorder and returns the Generator for
// chaining.
func (g *Generator) WithMetrics(m MetricsRecorder) *Generator {
	g.metrics = m
	return g
}

// WithDebugLogging toggles a structured per-call summary of variable and
// clause counts, the Go analogue of the original implementation's debug
// input snapshot, without its hardcoded file path or silent failure mode.
func (g *Generator) WithDebugLogging(enabled bool) *Generator {
	g.debug = enabled
	return g
}

// Generate implements generate(institution_id, timeout_seconds) from the
// invocation surface. extraConstraints, if non-empty, are layered on top of
// the assembled input for this call only — the staged-constraints
// equivalent of the original apply_constraints affordance — without
// mutating anything persisted.
func (g *Generator) Generate(ctx context.Context, institutionID string, timeoutSeconds int, extraConstraints ...CustomConstraint) ([]ScheduleEntry, error) {
	start := time.Now()
	outcome := "error"
	genID := uuid.NewString()
	defer func() {
		if g.metrics != nil {
			g.metrics.ObserveSolve(outcome, time.Since(start))
		}
	}()

	in, err := g.assembler.Assemble(ctx, institutionID)
	if err != nil {
		return nil, err
	}
	if len(extraConstraints) > 0 {
		in.CustomConstraints = append(append([]CustomConstraint(nil), in.CustomConstraints...), extraConstraints...)
	}

	if invalid := Validate(in); invalid != nil {
		outcome = "invalid_input"
		g.logger.Info("schedule generation rejected at validation",
			zap.String("generation_id", genID),
			zap.String("institution_id", institutionID),
			zap.String("reason", invalid.Reason),
		)
		return nil, invalid
	}

	enc := Encode(in)

	if infeasible := Probe(in, enc); infeasible != nil {
		outcome = "infeasible"
		g.logger.Info("schedule generation rejected at probing",
			zap.String("generation_id", genID),
			zap.String("institution_id", institutionID),
			zap.Int("pair_count", len(infeasible.Pairs)),
		)
		return nil, infeasible
	}

	cnf := Compile(in, enc, Full)

	if g.debug {
		g.logger.Debug("schedule generation encoded",
			zap.String("generation_id", genID),
			zap.String("institution_id", institutionID),
			zap.Int("variables", enc.NextVar-1),
			zap.Int("clauses", len(cnf.Clauses)),
		)
	}

	timeout := time.Duration(timeoutSeconds) * time.Second
	status, model := solve(cnf, timeout)

	switch status {
	case StatusSat:
		outcome = "sat"
		entries := Decode(model, enc)
		g.logger.Info("schedule generation solved",
			zap.String("generation_id", genID),
			zap.String("institution_id", institutionID),
			zap.Int("entries", len(entries)),
		)
		return entries, nil
	case StatusTimeout:
		outcome = "timeout"
		return nil, &NoSolutionError{Kind: NoSolutionTimeout, Message: "schedule generation timed out"}
	default:
		diag := Diagnose(in, timeout)
		outcome = "unsat_" + string(diag.Kind)
		return nil, diag
	}
}
