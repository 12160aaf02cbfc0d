// Application wiring for the journey CLI: logger, stores, dispatcher,
// registry.
package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/goliatone/go-journey"
	"github.com/goliatone/go-journey/pkg/activity"
	"github.com/goliatone/go-journey/pkg/activity/zaphook"
	"github.com/goliatone/go-journey/pkg/events"
	"github.com/goliatone/go-journey/pkg/mood"
	"github.com/goliatone/go-journey/pkg/profile"
	"github.com/goliatone/go-journey/pkg/safe"
	"github.com/goliatone/go-journey/pkg/store"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// App holds the wired application graph shared by all commands.
type App struct {
	logger    *zap.Logger
	registry  *journey.Registry
	functions *journey.FunctionRegistry

	safeDomain    *store.Domain[safe.Record]
	profileDomain *store.Domain[profile.Record]
	moodDomain    *store.Domain[mood.Record]

	sqlite *store.SQLiteKV
	fileKV *store.FileKV
}

// newApp wires stores, sinks, and the capability registry from configuration.
func newApp(cfg *viper.Viper) (*App, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	sugar := logger.Sugar()

	a := &App{logger: logger}
	if err := a.wireDomains(cfg, sugar); err != nil {
		return nil, err
	}

	hooks := activity.Hooks{}
	if cfg.GetBool(cfgKeyActivityEnabled) {
		hooks = append(hooks, zaphook.New(logger))
	}
	emitter := activity.NewEmitter(hooks, activity.Config{
		Enabled: cfg.GetBool(cfgKeyActivityEnabled),
		Domain:  cfg.GetString(cfgKeyActivityDomain),
	})

	bus := events.NewBus()
	bus.Subscribe(events.HandlerFunc(func(_ context.Context, event events.Event) error {
		logger.Info("event",
			zap.String("category", event.Category),
			zap.String("message", event.Message),
			zap.Time("occurred_at", event.OccurredAt),
		)
		return nil
	}))

	dispatcher := journey.NewDispatcher(
		journey.WithActivityHooks(activity.Hooks{activity.HookFunc(func(ctx context.Context, entry activity.Entry) error {
			return emitter.Emit(ctx, entry)
		})}),
		journey.WithEventBus(bus),
		journey.WithDispatchErrorHandler(func(err error) {
			sugar.Warnf("effect dispatch failed: %v", err)
		}),
	)

	functions := journey.NewFunctionRegistry()
	if err := functions.Register("format_duration", formatDurationFn); err != nil {
		return nil, err
	}
	a.functions = functions

	registry := journey.NewRegistry(
		journey.WithRuleFunctions(functions),
		journey.WithInvocationLogger(journey.InvocationLoggerFunc(func(event journey.InvocationLogEvent) {
			if event.Err != nil {
				sugar.Warnw("capability failed",
					"capability", event.Capability,
					"duration", event.Duration,
					"error", event.Err,
				)
				return
			}
			sugar.Debugw("capability invoked",
				"capability", event.Capability,
				"duration", event.Duration,
			)
		})),
	)
	registry.MustRegister(safe.NewService(a.safeDomain, dispatcher).Capabilities()...)
	registry.MustRegister(profile.NewService(a.profileDomain).Capabilities()...)
	registry.MustRegister(mood.NewService(a.moodDomain).Capabilities()...)
	a.registry = registry

	return a, nil
}

func (a *App) wireDomains(cfg *viper.Viper, sugar *zap.SugaredLogger) error {
	backend := cfg.GetString(cfgKeyBackend)
	dir := cfg.GetString(cfgKeyDataDir)

	var (
		safeStore    store.Store[safe.Record]
		profileStore store.Store[profile.Record]
		moodStore    store.Store[mood.Record]
	)
	switch backend {
	case "memory":
		safeStore = store.NewMemoryStore[safe.Record]()
		profileStore = store.NewMemoryStore[profile.Record]()
		moodStore = store.NewMemoryStore[mood.Record]()
	case "sqlite":
		kv, err := store.OpenSQLiteKV(filepath.Join(dir, "journey.db"))
		if err != nil {
			return err
		}
		a.sqlite = kv
		safeStore = store.NewJSONStore[safe.Record](kv)
		profileStore = store.NewJSONStore[profile.Record](kv)
		moodStore = store.NewJSONStore[mood.Record](kv)
	case "file":
		kv, err := store.NewFileKV(dir)
		if err != nil {
			return err
		}
		a.fileKV = kv
		safeStore = store.NewJSONStore[safe.Record](kv)
		profileStore = store.NewJSONStore[profile.Record](kv)
		moodStore = store.NewJSONStore[mood.Record](kv)
	default:
		return fmt.Errorf("unknown backend %q (valid: file, sqlite, memory)", backend)
	}

	a.safeDomain = store.NewDomain(safeStore, safe.StorageKey, safe.DefaultRecord,
		store.WithDomainLogger[safe.Record](sugar))
	a.profileDomain = store.NewDomain(profileStore, profile.StorageKey, profile.DefaultRecord,
		store.WithDomainLogger[profile.Record](sugar))
	a.moodDomain = store.NewDomain(moodStore, mood.StorageKey, mood.DefaultRecord,
		store.WithDomainLogger[mood.Record](sugar))
	return nil
}

// Close releases the sqlite handle when open and flushes buffered logs.
func (a *App) Close() error {
	var err error
	if a.sqlite != nil {
		err = a.sqlite.Close()
	}
	_ = a.logger.Sync()
	return err
}

// formatDurationFn exposes safe.FormatDuration to rule expressions and
// queries; the single argument is a millisecond count.
func formatDurationFn(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("format_duration expects 1 argument, got %d", len(args))
	}
	ms, err := toMilliseconds(args[0])
	if err != nil {
		return nil, err
	}
	return safe.FormatDuration(time.Duration(ms) * time.Millisecond), nil
}

func toMilliseconds(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("format_duration expects a number, got %T", value)
	}
}
