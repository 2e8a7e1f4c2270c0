package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-while/go-probview/internal/corpus"
	"github.com/go-while/go-probview/internal/models"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List problems in the problems directory",
		Run:   runList,
	}

	cmd.Flags().Bool("unsolved", false, "Only show unsolved problems")
	cmd.Flags().Bool("slugs-only", false, "Only output folder names")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	unsolved, _ := cmd.Flags().GetBool("unsolved")
	slugsOnly, _ := cmd.Flags().GetBool("slugs-only")

	c, _ := openCorpus()
	names, err := c.Scan()
	if err != nil {
		exitErr("list", err)
	}

	var metas []*models.Meta
	var slugs []string
	for _, name := range names {
		meta, err := c.ReadMeta(name)
		if errors.Is(err, corpus.ErrNoMeta) {
			continue
		} else if err != nil {
			exitErr("read "+name, err)
		}
		if unsolved && meta.Solved {
			continue
		}
		metas = append(metas, meta)
		slugs = append(slugs, name)
	}

	if slugsOnly {
		for _, name := range slugs {
			fmt.Println(name)
		}
		return
	}
	if formatFlag == "json" {
		printJSON(metas)
		return
	}
	for _, m := range metas {
		status := " "
		if m.Solved {
			status = "x"
		}
		fmt.Printf("[%s] %04d %-40s %-6s %s\n", status, m.Number, m.Title, m.Difficulty, strings.Join(m.Tags, ","))
	}
}
