package main

import (
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coursewatch/coursewatch/internal/config"
	"github.com/coursewatch/coursewatch/internal/httpapi"
	"github.com/coursewatch/coursewatch/internal/logging"
	"github.com/coursewatch/coursewatch/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the course-configuration web UI",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	api := httpapi.NewServer(logger, store.New(cfg.StorePath))

	logger.Info("config_ui_listening",
		zap.String("addr", cfg.Addr),
		zap.String("store", cfg.StorePath),
	)
	return http.ListenAndServe(cfg.Addr, api.Router())
}
