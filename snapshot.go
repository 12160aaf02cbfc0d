package journey

import (
	"errors"
	"fmt"
	"time"
)

var ErrNoEvaluator = errors.New("journey: evaluator not configured")

// Response stores the result produced by a snapshot query.
type Response struct {
	Value any
}

// Snapshot wraps a record value for read-only expression queries. Queries
// never mutate the record; capabilities remain the only write path.
type Snapshot struct {
	Value any

	cfg snapshotConfig
}

type snapshotConfig struct {
	evaluator Evaluator
	cache     ProgramCache
	functions *FunctionRegistry
	logger    EvaluatorLogger
}

// SnapshotOption configures a Snapshot.
type SnapshotOption func(*snapshotConfig)

// SnapshotWithEvaluator overrides the evaluator used for queries.
func SnapshotWithEvaluator(evaluator Evaluator) SnapshotOption {
	return func(cfg *snapshotConfig) {
		cfg.evaluator = evaluator
	}
}

// SnapshotWithProgramCache registers a program cache for the default evaluator.
func SnapshotWithProgramCache(cache ProgramCache) SnapshotOption {
	return func(cfg *snapshotConfig) {
		cfg.cache = cache
	}
}

// SnapshotWithFunctionRegistry registers custom functions for the default
// evaluator.
func SnapshotWithFunctionRegistry(registry *FunctionRegistry) SnapshotOption {
	return func(cfg *snapshotConfig) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// SnapshotWithLogger attaches an evaluator logger.
func SnapshotWithLogger(logger EvaluatorLogger) SnapshotOption {
	return func(cfg *snapshotConfig) {
		if logger == nil {
			cfg.logger = noopEvaluatorLogger{}
			return
		}
		cfg.logger = logger
	}
}

// NewSnapshot wraps value for querying.
func NewSnapshot(value any, opts ...SnapshotOption) *Snapshot {
	s := &Snapshot{Value: value}
	for _, opt := range opts {
		if opt != nil {
			opt(&s.cfg)
		}
	}
	return s
}

// Evaluate executes expr against the wrapped value and wraps the result.
func (s *Snapshot) Evaluate(expr string) (Response, error) {
	return s.EvaluateWith(RuleContext{}, expr)
}

// EvaluateWith executes expr using ctx, falling back to the wrapped value when
// ctx.Snapshot is nil.
func (s *Snapshot) EvaluateWith(ctx RuleContext, expr string) (Response, error) {
	if expr == "" {
		return Response{}, fmt.Errorf("expression must not be empty")
	}
	evaluator, err := s.resolveEvaluator()
	if err != nil {
		return Response{}, err
	}
	if ctx.Snapshot == nil {
		ctx.Snapshot = s.Value
	}
	ctx = ctx.withDefaults()
	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expr)
	duration := time.Since(start)
	evalErr = wrapEvaluationError(engine, expr, evalErr)
	s.evaluatorLogger().LogEvaluation(EvaluatorLogEvent{
		Engine:   engine,
		Expr:     expr,
		Duration: duration,
		Err:      evalErr,
	})
	if evalErr != nil {
		return Response{}, evalErr
	}
	return Response{Value: value}, nil
}

func (s *Snapshot) resolveEvaluator() (Evaluator, error) {
	if s.cfg.evaluator != nil {
		return s.cfg.evaluator, nil
	}
	var exprOpts []ExprEvaluatorOption
	if s.cfg.cache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(s.cfg.cache))
	}
	if s.cfg.functions != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(s.cfg.functions))
	}
	defaultEvaluator := NewExprEvaluator(exprOpts...)
	if defaultEvaluator == nil {
		return nil, ErrNoEvaluator
	}
	s.cfg.evaluator = defaultEvaluator
	return defaultEvaluator, nil
}

func (s *Snapshot) evaluatorLogger() EvaluatorLogger {
	if s.cfg.logger != nil {
		return s.cfg.logger
	}
	return noopEvaluatorLogger{}
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch fmt.Sprintf("%T", e) {
	case "*journey.exprEvaluator":
		return "expr"
	case "*journey.celEvaluator":
		return "cel"
	case "*journey.jsEvaluator":
		return "js"
	default:
		return "custom"
	}
}
