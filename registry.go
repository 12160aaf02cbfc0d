package journey

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// RegistryOption configures a Registry.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	evaluator Evaluator
	cache     ProgramCache
	functions *FunctionRegistry
	logger    InvocationLogger
}

// WithRuleEvaluator selects the evaluator used for ArgSpec rule expressions.
// When absent an expr evaluator is constructed lazily.
func WithRuleEvaluator(e Evaluator) RegistryOption {
	return func(cfg *registryConfig) {
		cfg.evaluator = e
	}
}

// WithRuleProgramCache wires a ProgramCache into the lazily built default
// evaluator.
func WithRuleProgramCache(cache ProgramCache) RegistryOption {
	return func(cfg *registryConfig) {
		cfg.cache = cache
	}
}

// WithRuleFunctions exposes registry functions to rule expressions.
func WithRuleFunctions(registry *FunctionRegistry) RegistryOption {
	return func(cfg *registryConfig) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// WithInvocationLogger attaches an invocation logger to the registry.
func WithInvocationLogger(logger InvocationLogger) RegistryOption {
	return func(cfg *registryConfig) {
		if logger == nil {
			cfg.logger = noopInvocationLogger{}
			return
		}
		cfg.logger = logger
	}
}

// Registry holds the capabilities exposed to the agent runtime, keyed by
// globally unique names. It is safe for concurrent use.
type Registry struct {
	mu           sync.RWMutex
	capabilities map[string]Capability
	cfg          registryConfig
}

// NewRegistry constructs an empty capability registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := registryConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Registry{
		capabilities: make(map[string]Capability),
		cfg:          cfg,
	}
}

// Register adds a capability, guarding against duplicate names.
func (r *Registry) Register(c Capability) error {
	if err := c.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.capabilities[c.Name]; exists {
		return fmt.Errorf("%w: %s", ErrCapabilityExists, c.Name)
	}
	r.capabilities[c.Name] = c
	return nil
}

// MustRegister registers capabilities and panics on error. Intended for
// static wiring at construction time.
func (r *Registry) MustRegister(capabilities ...Capability) {
	for _, c := range capabilities {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
}

// Get returns the capability registered under name.
func (r *Registry) Get(name string) (Capability, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.capabilities[name]
	return c, ok
}

// Names returns all registered capability names sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.capabilities))
	for name := range r.capabilities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Capabilities returns a copy of every registered capability, sorted by name.
func (r *Registry) Capabilities() []Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Capability, 0, len(r.capabilities))
	for _, c := range r.capabilities {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Count returns the number of registered capabilities.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.capabilities)
}

// Invoke dispatches a capability by name. Arguments are validated against the
// declared ArgSpecs before the handler runs; a rejected invocation leaves all
// persisted records untouched. Handler failures propagate wrapped in a
// CapabilityError so callers can still match ErrInvalidState and friends with
// errors.Is.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (Result, error) {
	c, ok := r.Get(name)
	if !ok {
		return Result{}, &CapabilityError{Capability: name, Err: ErrCapabilityNotFound}
	}

	cloned := make(map[string]any, len(args))
	for key, value := range args {
		cloned[key] = value
	}

	start := time.Now()
	err := r.validateArgs(c, cloned)
	if err == nil {
		var res Result
		res, err = c.Handler(ctx, Invocation{Name: name, Args: cloned})
		r.logger().LogInvocation(InvocationLogEvent{
			Capability: name,
			Duration:   time.Since(start),
			Err:        err,
		})
		if err == nil {
			return res, nil
		}
		return Result{}, wrapCapabilityError(name, err)
	}

	r.logger().LogInvocation(InvocationLogEvent{
		Capability: name,
		Duration:   time.Since(start),
		Err:        err,
	})
	return Result{}, wrapCapabilityError(name, err)
}

func (r *Registry) validateArgs(c Capability, args map[string]any) error {
	for _, spec := range c.Args {
		value, present := args[spec.Name]
		if !present {
			if spec.Required {
				return fmt.Errorf("%w: missing required argument %q", ErrInvalidArgument, spec.Name)
			}
			continue
		}
		if err := spec.checkType(value); err != nil {
			return err
		}
		if spec.Rule == "" {
			continue
		}
		verdict, err := r.resolveEvaluator().Evaluate(RuleContext{Args: args}, spec.Rule)
		if err != nil {
			return err
		}
		accepted, ok := verdict.(bool)
		if !ok {
			return fmt.Errorf("journey: rule %q for argument %q must return a boolean, got %T", spec.Rule, spec.Name, verdict)
		}
		if !accepted {
			return fmt.Errorf("%w: argument %q rejected by rule %q", ErrInvalidArgument, spec.Name, spec.Rule)
		}
	}
	return nil
}

func (r *Registry) resolveEvaluator() Evaluator {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cfg.evaluator != nil {
		return r.cfg.evaluator
	}
	var exprOpts []ExprEvaluatorOption
	if r.cfg.cache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(r.cfg.cache))
	}
	if r.cfg.functions != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(r.cfg.functions))
	}
	r.cfg.evaluator = NewExprEvaluator(exprOpts...)
	return r.cfg.evaluator
}

func (r *Registry) logger() InvocationLogger {
	if r.cfg.logger != nil {
		return r.cfg.logger
	}
	return noopInvocationLogger{}
}
