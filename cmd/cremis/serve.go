package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/dshills/cremis/internal/api"
	"github.com/dshills/cremis/internal/config"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the questionnaire and scoring over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := applyServeFlags(cmd, config.Load())
			if err != nil {
				return exitError(3, "%v", err)
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":8080", "Listen address (env CREMIS_ADDR)")
	flags.String("questionnaire", "cremis", "Built-in questionnaire name or path (env CREMIS_QUESTIONNAIRE)")
	flags.Bool("require-complete", false, "Reject incomplete submissions (env CREMIS_REQUIRE_COMPLETE)")
	flags.StringSlice("cors-origin", nil, "Allowed CORS origins (env CREMIS_CORS_ORIGINS)")

	return cmd
}

// applyServeFlags overrides environment settings with flags the user set explicitly.
func applyServeFlags(cmd *cobra.Command, cfg config.Server) (config.Server, error) {
	flags := cmd.Flags()
	var err error
	if flags.Changed("addr") {
		if cfg.Addr, err = flags.GetString("addr"); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("questionnaire") {
		if cfg.Questionnaire, err = flags.GetString("questionnaire"); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("require-complete") {
		if cfg.RequireComplete, err = flags.GetBool("require-complete"); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("cors-origin") {
		if cfg.CORSOrigins, err = flags.GetStringSlice("cors-origin"); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func runServe(ctx context.Context, cfg config.Server) error {
	eval, err := loadEvaluator(cfg.Questionnaire, cfg.RequireComplete)
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	router := api.NewRouter(api.NewHandler(eval), cfg)

	if err := api.Serve(ctx, cfg, router); err != nil {
		return exitError(1, "%v", err)
	}
	return nil
}
