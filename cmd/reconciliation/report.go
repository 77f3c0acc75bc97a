package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"reconciliation-service/internal/api/responses"
	"reconciliation-service/internal/config"
	"reconciliation-service/internal/core/export"
	"reconciliation-service/internal/core/reconciliation"
	"reconciliation-service/internal/domain"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newReportCmd(configPath *string) *cobra.Command {
	var input, output, format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Gera o relatório de conciliação a partir de um arquivo JSON de documentos",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			logger, err := responses.InitLogger(cfg.LogLevel, cfg.Development)
			if err != nil {
				return err
			}
			defer logger.Sync()

			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("erro ao ler documentos: %w", err)
			}
			var docs []domain.FiscalDocument
			if err := json.Unmarshal(data, &docs); err != nil {
				return fmt.Errorf("erro ao interpretar documentos de %s: %w", input, err)
			}

			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(output), ".")
			}
			renderer, err := export.RendererFor(format)
			if err != nil {
				return err
			}

			report, err := reconciliation.NewService(cfg.Workers, logger).BuildReport(cmd.Context(), docs)
			if err != nil {
				return err
			}
			if output == "" {
				output = export.FileName("notas_fiscais", report.GeneratedAt, renderer)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("erro ao criar %s: %w", output, err)
			}
			defer f.Close()

			if err := renderer.Render(f, export.ReportTables(report)...); err != nil {
				return fmt.Errorf("erro ao gerar relatório: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			logger.Info("relatório gerado", zap.String("output", output), zap.Int("documents", len(docs)), zap.Int("duplicates", len(report.Duplicates)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "arquivo JSON com a lista de documentos")
	cmd.Flags().StringVarP(&output, "output", "o", "", "arquivo de saída (.xlsx ou .csv)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "formato de saída: xlsx ou csv")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
