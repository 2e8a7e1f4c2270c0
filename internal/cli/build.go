package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-while/go-probview/internal/corpus"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "build [number]",
		Short: "Rebuild ui/problem.json of one or all problems",
		Args:  cobra.MaximumNArgs(1),
		Run:   runBuild,
	}

	RootCmd.AddCommand(cmd)
}

func runBuild(cmd *cobra.Command, args []string) {
	c, _ := openCorpus()

	if len(args) == 1 {
		name, err := c.FindProblem(parseNumber(args[0]))
		if err != nil {
			exitErr("build", err)
		}
		rec, err := c.Aggregate(name)
		if err != nil {
			exitErr("build", err)
		}
		printRecords([]*corpus.Record{rec}, nil)
		return
	}

	records, failed, err := c.AggregateAll()
	if err != nil {
		exitErr("build", err)
	}
	printRecords(records, failed)
	if len(failed) > 0 {
		os.Exit(1)
	}
}

func printRecords(records []*corpus.Record, failed map[string]error) {
	if formatFlag == "json" {
		errs := make(map[string]string, len(failed))
		for name, err := range failed {
			errs[name] = err.Error()
		}
		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, map[string]any{"slug": rec.Slug, "checksum": rec.Checksum, "changed": rec.Changed})
		}
		printJSON(map[string]any{"records": out, "failed": errs})
		return
	}
	for _, rec := range records {
		state := "unchanged"
		if rec.Changed {
			state = "written"
		}
		fmt.Printf("%-40s %s\n", rec.Slug, state)
	}
	names := make([]string, 0, len(failed))
	for name := range failed {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "%-40s failed: %v\n", name, failed[name])
	}
}
