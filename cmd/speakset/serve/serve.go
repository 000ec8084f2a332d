package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flarebyte/speakset-native/internal/config"
	"github.com/flarebyte/speakset-native/internal/digest"
	"github.com/flarebyte/speakset-native/internal/ident"
	"github.com/flarebyte/speakset-native/internal/logging"
	"github.com/flarebyte/speakset-native/internal/server"
	"github.com/flarebyte/speakset-native/internal/store"
	"github.com/spf13/cobra"
)

type options struct {
	cfgPath string
	addr    string
	hash    string
}

// NewCmd creates `speakset serve`.
func NewCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:           "serve",
		Short:         "Run the HTTP backend that issues tokens and message ids",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(o)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
	cmd.Flags().StringVarP(&o.cfgPath, "config", "c", "", "Path to config file (.cue, .yaml)")
	cmd.Flags().StringVar(&o.addr, "addr", "", "Listen address, host:port (overrides config and env)")
	cmd.Flags().StringVar(&o.hash, "hash", "", "Hash function: xxhash or murmur3 (overrides config and env)")
	return cmd
}

// resolveConfig applies defaults, then the config file, then the
// environment (including .env), then flags.
func resolveConfig(o options) (config.Config, error) {
	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		return config.Config{}, err
	}
	config.LoadDotEnv()
	cfg, err = config.FromEnv(cfg)
	if err != nil {
		return config.Config{}, err
	}
	if o.addr != "" {
		cfg.Addr = o.addr
	}
	if o.hash != "" {
		cfg.Hash = o.hash
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config) error {
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	hasher, err := digest.Lookup(cfg.Hash)
	if err != nil {
		return err
	}
	st := store.New()
	if cfg.Seed {
		st = store.NewSeeded(time.Now())
	}

	srv := server.New(server.Options{
		Addr:      cfg.Addr,
		StaticDir: cfg.StaticDir,
		Generator: ident.New(ident.WithHasher(hasher)),
		Store:     st,
		Logger:    logger,
	})
	return srv.ListenAndServe(ctx, cfg.ShutdownGrace)
}
