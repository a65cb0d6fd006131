package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/nyxos/internal/config"
	"github.com/Gaurav-Gosain/nyxos/internal/theme"
	"github.com/Gaurav-Gosain/nyxos/internal/web"
)

type serveOptions struct {
	host           string
	port           string
	readOnly       bool
	maxConnections int
	noWatch        bool
}

func (o *serveOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.host, "host", "", "Host to bind to (default from config: localhost)")
	cmd.Flags().StringVar(&o.port, "port", "", "Port to listen on (default from config: 7681)")
	cmd.Flags().BoolVar(&o.readOnly, "read-only", false, "Clients may watch but not change their desktop")
	cmd.Flags().IntVar(&o.maxConnections, "max-connections", 0, "Maximum concurrent connections (0 = unlimited)")
	cmd.Flags().BoolVar(&o.noWatch, "no-watch", false, "Do not reload the config file when it changes")
}

func newServeCmd() *cobra.Command {
	var opts serveOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the desktop to the browser",
		Long: `Serve the nyxos desktop over HTTP

Every WebSocket connection drives its own desktop. Flags override the
[server] section of the config file. The config file is watched and new
sessions pick up changes without a restart.`,
		Example: `  # Default: http://localhost:7681
  nyxos serve

  # Custom port, at most 10 viewers
  nyxos serve --port 8080 --max-connections 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func runServe(cmd *cobra.Command, opts serveOptions) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	userConfig := loadConfig(path)

	if err := theme.Initialize(userConfig.Appearance.Theme); err != nil {
		logger.Warn("theme unavailable", "theme", userConfig.Appearance.Theme, "err", err)
	}

	cfg := web.ConfigFromUser(userConfig)
	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = opts.host
	}
	if flags.Changed("port") {
		cfg.Port = opts.port
	}
	if flags.Changed("read-only") {
		cfg.ReadOnly = opts.readOnly
	}
	if flags.Changed("max-connections") {
		cfg.MaxConnections = opts.maxConnections
	}
	cfg.Debug = debugMode

	server := web.NewServer(cfg, userConfig)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !opts.noWatch {
		go func() {
			err := config.Watch(ctx, path,
				func(c *config.UserConfig) {
					if err := theme.Initialize(c.Appearance.Theme); err != nil {
						logger.Warn("theme unavailable", "theme", c.Appearance.Theme, "err", err)
					}
					server.SetUserConfig(c)
				},
				func(err error) {
					logger.Warn("config reload failed", "path", path, "err", err)
				},
			)
			if err != nil {
				logger.Warn("config watcher stopped", "err", err)
			}
		}()
	}

	logger.Info("configuration", "path", path)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// configPath returns the --config flag or the default location.
func configPath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("could not determine config path: %w", err)
	}
	return path, nil
}

// loadConfig reads the config at path, falling back to the defaults.
func loadConfig(path string) *config.UserConfig {
	userConfig, err := config.LoadFile(path)
	if err != nil {
		logger.Warn("failed to load config, using defaults", "path", path, "err", err)
		return config.DefaultConfig()
	}
	return userConfig
}
