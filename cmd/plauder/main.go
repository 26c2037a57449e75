// Command plauder sends one chat prompt through the provider pipeline
// and streams the reply to stdout.
//
// The prompt is taken from the command line arguments, or from stdin
// when no arguments are given.
//
// Configuration via config file and environment variables:
//
//	PLAUDER_CONFIG       - Config file path (default: ./config.yaml, /etc/plauder/config.yaml)
//	PLAUDER_PROVIDER     - Provider: "openai", "anthropic", "perplexity" (default: "openai")
//	PLAUDER_API_KEY      - Backend credential
//	PLAUDER_MODEL        - Default model name (optional)
//	PLAUDER_STORAGE      - Transcript store: "memory" or "postgres" (default: "memory")
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/plauderhq/plauder/pkg/api"
	"github.com/plauderhq/plauder/pkg/config"
	"github.com/plauderhq/plauder/pkg/debug"
	"github.com/plauderhq/plauder/pkg/engine"
	"github.com/plauderhq/plauder/pkg/observability"
	"github.com/plauderhq/plauder/pkg/provider"
	"github.com/plauderhq/plauder/pkg/provider/anthropic"
	"github.com/plauderhq/plauder/pkg/provider/openai"
	"github.com/plauderhq/plauder/pkg/provider/perplexity"
	"github.com/plauderhq/plauder/pkg/storage"
	"github.com/plauderhq/plauder/pkg/storage/memory"
	"github.com/plauderhq/plauder/pkg/storage/postgres"
	"github.com/plauderhq/plauder/pkg/transport"
)

func main() {
	if err := run(); err != nil {
		slog.Error("plauder failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "config file path")
	model := flag.String("model", "", "model override")
	system := flag.String("system", "", "system prompt override")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	debug.Init(cfg.Logging.Debug, cfg.Logging.Level)
	if *model != "" {
		cfg.Provider.DefaultModel = *model
	}
	if *system != "" {
		cfg.Engine.SystemPrompt = *system
	}

	prompt, err := readPrompt(flag.Args())
	if err != nil {
		return err
	}
	if prompt == "" {
		return fmt.Errorf("empty prompt")
	}

	logger := slog.Default()

	registry, err := buildRegistry(cfg, logger)
	if err != nil {
		return err
	}
	adapter, ok := registry.Get(cfg.Provider.Name)
	if !ok {
		return fmt.Errorf("unknown provider %q (available: %s)",
			cfg.Provider.Name, strings.Join(registry.Names(), ", "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Observability.Metrics.Enabled {
		go func() {
			addr := cfg.Observability.Metrics.Addr
			logger.Info("metrics listener starting", "addr", addr)
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Warn("metrics listener failed", "error", err.Error())
			}
		}()
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	launcher := transport.NewCurlLauncher(logger)
	if cfg.Transport.Binary != "" {
		launcher.Binary = cfg.Transport.Binary
	}

	eng, err := engine.New(adapter, launcher, store, engine.Config{
		SystemPrompt:    cfg.Engine.SystemPrompt,
		SaveTranscripts: cfg.Engine.SaveTranscripts,
	}, logger)
	if err != nil {
		return err
	}

	if cfg.Engine.Profile != "" {
		ctx = storage.WithProfile(ctx, cfg.Engine.Profile)
	}

	payload := &api.Payload{
		Model:    cfg.Provider.DefaultModel,
		Messages: []api.Message{{Role: api.RoleUser, Content: prompt}},
		Params:   map[string]any{"stream": true},
	}

	result, err := eng.Chat(ctx, payload, func(delta string) error {
		_, werr := fmt.Fprint(os.Stdout, delta)
		return werr
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout)

	if result.TranscriptID != "" {
		logger.Info("transcript saved", "id", result.TranscriptID)
	}

	return nil
}

// buildRegistry constructs all configured adapters. Every adapter is
// registered so model queries can cross providers; the active one is
// selected by cfg.Provider.Name.
func buildRegistry(cfg *config.Config, logger *slog.Logger) (*provider.Registry, error) {
	cred := cfg.Provider.Credential()
	registry := provider.NewRegistry()

	oaCfg := openai.DefaultConfig(cred)
	if cfg.Provider.Name == "openai" {
		applyOverrides(cfg, &oaCfg.Endpoint, &oaCfg.Models, &oaCfg.DefaultModel)
	}
	oa, err := openai.New(oaCfg, logger)
	if err != nil {
		return nil, err
	}

	anCfg := anthropic.DefaultConfig(cred)
	if cfg.Provider.Name == "anthropic" {
		applyOverrides(cfg, &anCfg.Endpoint, &anCfg.Models, &anCfg.DefaultModel)
	}
	an, err := anthropic.New(anCfg, logger)
	if err != nil {
		return nil, err
	}

	pxCfg := perplexity.DefaultConfig(cred)
	if cfg.Provider.Name == "perplexity" {
		applyOverrides(cfg, &pxCfg.Endpoint, &pxCfg.Models, &pxCfg.DefaultModel)
	}
	px, err := perplexity.New(pxCfg, logger)
	if err != nil {
		return nil, err
	}

	for _, a := range []provider.Adapter{oa, an, px} {
		if err := registry.Register(a); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// applyOverrides applies the endpoint and model overrides from the
// config to the selected provider's adapter config.
func applyOverrides(cfg *config.Config, endpoint *string, models *[]string, defaultModel *string) {
	if cfg.Provider.Endpoint != "" {
		*endpoint = cfg.Provider.Endpoint
	}
	if len(cfg.Provider.Models) > 0 {
		*models = cfg.Provider.Models
	}
	if cfg.Provider.DefaultModel != "" {
		*defaultModel = cfg.Provider.DefaultModel
	}
}

// buildStore constructs the transcript store, or returns nil when
// transcript saving is disabled.
func buildStore(ctx context.Context, cfg *config.Config) (storage.TranscriptStore, error) {
	if !cfg.Engine.SaveTranscripts {
		return nil, nil
	}

	switch cfg.Storage.Type {
	case "postgres":
		store, err := postgres.New(ctx, postgres.Config{
			DSN:            cfg.Storage.Postgres.DSN,
			MaxConns:       cfg.Storage.Postgres.MaxConns,
			MigrateOnStart: cfg.Storage.Postgres.MigrateOnStart,
		})
		if err != nil {
			return nil, fmt.Errorf("creating postgres store: %w", err)
		}
		return store, nil
	default:
		return memory.New(cfg.Storage.MaxSize), nil
	}
}

// readPrompt joins the command line arguments, or reads stdin when no
// arguments are given.
func readPrompt(args []string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading prompt from stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
