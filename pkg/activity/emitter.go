package activity

import (
	"context"
	"strings"
)

// Config controls activity emission defaults supplied by DI/config.
type Config struct {
	Enabled bool
	Domain  string
}

// Emitter fans out entries to hooks while applying defaults.
type Emitter struct {
	hooks   Hooks
	enabled bool
	domain  string
}

// NewEmitter constructs an emitter from hooks and configuration.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	domain := strings.TrimSpace(cfg.Domain)
	if domain == "" {
		domain = "journey"
	}
	normalizedHooks := cloneHooks(hooks)
	return &Emitter{
		hooks:   normalizedHooks,
		enabled: cfg.Enabled && len(normalizedHooks) > 0,
		domain:  domain,
	}
}

// Enabled reports whether emissions should be attempted.
func (e *Emitter) Enabled() bool {
	return e != nil && e.enabled && len(e.hooks) > 0
}

// Emit forwards the entry to all hooks, applying the default domain when
// missing.
func (e *Emitter) Emit(ctx context.Context, entry Entry) error {
	if !e.Enabled() {
		return nil
	}
	if strings.TrimSpace(entry.Domain) == "" && e.domain != "" {
		entry.Domain = e.domain
	}
	return e.hooks.Notify(ctx, entry)
}

func cloneHooks(hooks Hooks) Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]Hook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	return Hooks(normalized)
}
