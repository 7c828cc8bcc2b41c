package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mfaivrep/planif/core/plan"
	"github.com/mfaivrep/planif/infra/logger"
	"github.com/mfaivrep/planif/infra/store"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the resolved task execution order without scheduling",
	RunE:  printChain,
}

func init() {
	rootCmd.AddCommand(chainCmd)
}

func printChain(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.New("chain-command").Errorf("store close: %v", err)
		}
	}()

	items, err := st.LoadWorkItems(ctx)
	if err != nil {
		return err
	}
	ordered, warnings := plan.ResolveChain(plan.BuildGroups(items))
	for i, g := range ordered {
		fmt.Printf("%d. %s (%d items)\n", i+1, g.TaskName, len(g.Items))
	}
	for _, w := range warnings {
		fmt.Printf("warning: %s: %s\n", w.Code, w.Message)
	}
	return nil
}
