// cmd/reconciliation/main.go
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Printf("Erro: %v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "reconciliation",
		Short:         "Conciliação de PIS, COFINS, IPI e ICMS de NF-e/CT-e",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "arquivo YAML de configuração")

	root.AddCommand(newServeCmd(&configPath), newReportCmd(&configPath))
	return root
}
