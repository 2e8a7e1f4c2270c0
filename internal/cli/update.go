package cli

import (
	"fmt"

	"github.com/go-while/go-probview/internal/corpus"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "update <number> key=value [key=value...]",
		Short: "Update problem metadata and rebuild its record",
		Long: `Update fields of meta.json, e.g. solved=true tags=array,hash-table links.github=https://...
Values true/false become booleans and comma separated values become lists.`,
		Args: cobra.MinimumNArgs(2),
		Run:  runUpdate,
	}

	RootCmd.AddCommand(cmd)
}

func runUpdate(cmd *cobra.Command, args []string) {
	number := parseNumber(args[0])
	updates, err := corpus.ParseUpdates(args[1:])
	if err != nil {
		exitErr("update", err)
	}

	c, _ := openCorpus()
	rec, skipped, err := c.UpdateProgress(number, updates)
	if err != nil {
		exitErr("update", err)
	}

	if formatFlag == "json" {
		printJSON(map[string]any{"slug": rec.Slug, "changed": rec.Changed, "skipped": skipped})
		return
	}
	for _, key := range skipped {
		fmt.Printf("Warning: key '%s' not found in meta.json, skipped\n", key)
	}
	fmt.Printf("Updated problem #%d: %s\n", rec.Problem.Number, rec.Problem.Title)
}
