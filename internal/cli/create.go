package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/go-while/go-probview/internal/corpus"
	"github.com/go-while/go-probview/internal/leetcode"
	"github.com/go-while/go-probview/internal/models"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "create <number> <title> [template]",
		Short: "Scaffold a new problem folder",
		Long:  "Scaffold README.md, solution files for every configured language, meta.json and ui/problem.json. Existing files are kept.",
		Args:  cobra.RangeArgs(2, 3),
		Run:   runCreate,
	}

	cmd.Flags().Bool("fetch", false, "Fetch difficulty, tags and statement from LeetCode")
	cmd.Flags().Duration("timeout", 15*time.Second, "LeetCode request timeout")

	RootCmd.AddCommand(cmd)
}

func runCreate(cmd *cobra.Command, args []string) {
	fetch, _ := cmd.Flags().GetBool("fetch")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	s := corpus.Scaffold{Number: parseNumber(args[0]), Title: args[1]}
	if len(args) > 2 {
		s.Template = args[2]
	}

	if fetch {
		q, err := leetcode.New(timeout).GetQuestion(cmd.Context(), corpus.NormalizeTitle(s.Title))
		if err != nil {
			// scaffolding still works without the details
			fmt.Fprintf(os.Stderr, "warning: fetch '%s': %v\n", s.Title, err)
		} else {
			s.Difficulty = models.Difficulty(q.Difficulty)
			s.Tags = q.Tags
			s.Statement = q.Statement
			s.LeetCodeURL = q.URL
		}
	}

	c, _ := openCorpus()
	name, err := c.CreateProblem(s)
	if err != nil {
		exitErr("create", err)
	}

	if formatFlag == "json" {
		printJSON(map[string]string{"slug": name, "path": c.ProblemPath(name)})
		return
	}
	fmt.Printf("Created problem #%d: %s\n", s.Number, s.Title)
	fmt.Printf("  folder: %s\n", c.ProblemPath(name))
	fmt.Printf("  view:   /view/%s\n", name)
}
