package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/go-while/go-probview/internal/corpus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add-language <name> <ext>",
		Short: "Add a solution language",
		Args:  cobra.ExactArgs(2),
		Run:   runAddLanguage,
	}

	cmd.Flags().StringP("boilerplate", "b", "", "Initial content of new solution files")
	cmd.Flags().Bool("apply", false, "Scaffold the language into every existing problem")

	RootCmd.AddCommand(cmd)
}

func runAddLanguage(cmd *cobra.Command, args []string) {
	name, ext := args[0], args[1]
	boilerplate, _ := cmd.Flags().GetString("boilerplate")
	apply, _ := cmd.Flags().GetBool("apply")

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive && !cmd.Flags().Changed("boilerplate") {
		boilerplate = prompt(fmt.Sprintf("Boilerplate for %s [%s]: ", name, strings.TrimSpace(corpus.DefaultBoilerplate(name))))
	}
	if interactive && !cmd.Flags().Changed("apply") {
		answer := prompt("Add to all existing problems? [y/N]: ")
		apply = strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
	}

	c, _ := openCorpus()
	lang, err := c.AddLanguage(name, ext, unescapeNewlines(boilerplate))
	if err != nil {
		exitErr("add-language", err)
	}
	fmt.Printf("Added language '%s' (.%s)\n", lang.Name, lang.Ext)

	if !apply {
		return
	}
	touched, err := c.ApplyLanguage(lang)
	if err != nil {
		exitErr("apply language", err)
	}
	fmt.Printf("Updated %d problem(s)\n", touched)
}

// prompt reads one line from stdin
func prompt(label string) string {
	fmt.Print(label)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}

// unescapeNewlines turns a literal \n typed on the command line into a newline
func unescapeNewlines(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, `\n`, "\n")
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s
}
