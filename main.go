// greeter — a small Gin backend serving a greeting, a JSON message and a static frontend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vesaa/greeter/internal/config"
	"github.com/vesaa/greeter/internal/server"
	"github.com/vesaa/greeter/internal/static"
)

const version = "v0.1.0"

func printBanner(mode string) {
	fmt.Printf("\n  ► greeter %s  |  Mode: %s\n\n", version, mode)
}

func main() {
	root := &cobra.Command{
		Use:          "greeter",
		Short:        "greeter — greeting page, JSON message endpoint and static frontend server",
		SilenceUsage: true,
	}

	// ── server subcommand ─────────────────────────────────────────────────────
	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server (default 127.0.0.1:5000)",
		RunE: func(cmd *cobra.Command, args []string) error {
			printBanner("SERVER")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			applyServerFlags(cmd.Flags(), cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			src, err := frontendSource(cfg)
			if err != nil {
				return err
			}

			engine, err := server.New(cfg, src)
			if err != nil {
				return fmt.Errorf("building server: %w", err)
			}

			fmt.Printf("  ✓ Greeting      → http://%s/\n", cfg.Addr())
			fmt.Printf("  ✓ JSON message  → http://%s/api/message\n", cfg.Addr())
			fmt.Printf("  ✓ Frontend      → http://%s/frontend/index.html (%s)\n\n", cfg.Addr(), src)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx, cfg, engine)
		},
	}
	addServerFlags(serverCmd.Flags())

	// ── version subcommand ────────────────────────────────────────────────────
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print greeter version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("greeter %s\n", version)
		},
	}

	root.AddCommand(serverCmd, versionCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addServerFlags(flags *pflag.FlagSet) {
	flags.String("host", "", "Bind host (overrides config)")
	flags.Int("port", 0, "Bind port (overrides config)")
	flags.Bool("debug", false, "Enable Gin debug mode and request logging")
	flags.String("frontend", "", "Frontend directory (default <binary dir>/../frontend)")
	flags.Bool("embedded", false, "Serve the frontend compiled into the binary")
}

// applyServerFlags lets CLI flags override config values. Unset flags
// leave the config untouched.
func applyServerFlags(flags *pflag.FlagSet, cfg *config.Config) {
	if host, _ := flags.GetString("host"); host != "" {
		cfg.ServerHost = host
	}
	if port, _ := flags.GetInt("port"); port != 0 {
		cfg.Port = port
	}
	if debug, _ := flags.GetBool("debug"); debug {
		cfg.Debug = true
	}
	if dir, _ := flags.GetString("frontend"); dir != "" {
		cfg.FrontendDir = dir
	}
	if embedded, _ := flags.GetBool("embedded"); embedded {
		cfg.FrontendSource = config.SourceEmbedded
	}
}

// frontendSource picks the static root described by cfg.
func frontendSource(cfg *config.Config) (static.Source, error) {
	if cfg.FrontendSource == config.SourceEmbedded {
		return server.EmbeddedFrontend(), nil
	}
	dir := cfg.FrontendDir
	if dir == "" {
		d, err := static.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	src, err := static.NewDir(dir)
	if err != nil {
		return nil, err
	}
	return src, nil
}
