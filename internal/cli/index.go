package cli

import (
	"fmt"
	"time"

	"github.com/go-while/go-probview/internal/indexer"
	"github.com/go-while/go-probview/internal/registry"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Aggregate all problems into the index database",
		Run:   runIndex,
	}

	RootCmd.AddCommand(cmd)
}

func runIndex(cmd *cobra.Command, args []string) {
	c, cfg := openCorpus()
	db, err := openDatabase(cfg)
	if err != nil {
		exitErr("open database", err)
	}
	defer db.Close()

	run, err := indexer.New(c, db, registry.New(c.Dir)).RunOnce(cmd.Context())
	if err != nil {
		exitErr("index", err)
	}

	if formatFlag == "json" {
		printJSON(run)
		return
	}
	fmt.Printf("Index run %s: %d indexed, %d failed, %d pruned in %s\n",
		run.ID, run.Indexed, run.Failed, run.Pruned, run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
}
