package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"reconciliation-service/internal/api"
	"reconciliation-service/internal/api/handlers"
	"reconciliation-service/internal/api/responses"
	"reconciliation-service/internal/config"
	"reconciliation-service/internal/core/reconciliation"
	"reconciliation-service/internal/core/reports"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Inicia a API HTTP de conciliação",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := responses.InitLogger(cfg.LogLevel, cfg.Development)
	if err != nil {
		return err
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	reconciliationService := reconciliation.NewService(cfg.Workers, logger)
	reportStore := reports.NewStore(cfg.ReportTTL)
	reportHandler := handlers.NewReportHandler(reconciliationService, reportStore, cfg.MaxDocuments)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.NewRouter(reportHandler, logger),
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🚀 Reconciliation Service (Go) iniciado", zap.String("port", cfg.Port), zap.Int("workers", cfg.Workers))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Falha ao iniciar o servidor de conciliação", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
