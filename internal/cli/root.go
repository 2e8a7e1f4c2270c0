// Package cli implements the probmgr commands that maintain the problems directory.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/go-while/go-probview/internal/config"
	"github.com/go-while/go-probview/internal/corpus"
	"github.com/go-while/go-probview/internal/database"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	problemsDir string
	dbPath      string
	formatFlag  string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "probmgr",
	Short: "Manage the coding problem archive",
	Long:  "Create problems, record progress, manage languages and rebuild the aggregated problem records.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file (default: $PROBVIEW_CONFIG)")
	RootCmd.PersistentFlags().StringVarP(&problemsDir, "problems", "p", "", "Problems directory (default: $PROBVIEW_PROBLEMS or ./problems)")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Index database path (default: $PROBVIEW_DB or ./data/probview.sq3)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: json or text")
}

func loadConfig() (*config.MainConfig, error) {
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return nil, err
	}
	if problemsDir != "" {
		cfg.Corpus.ProblemsDir = problemsDir
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openCorpus() (*corpus.Corpus, *config.MainConfig) {
	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	return corpus.New(cfg.Corpus.ProblemsDir, cfg.Corpus.LanguagesFile, cfg.Corpus.DefaultTemplate), cfg
}

func openDatabase(cfg *config.MainConfig) (*database.Database, error) {
	dbconfig := database.DefaultDBConfig()
	dbconfig.Path = cfg.Database.Path
	dbconfig.WALMode = cfg.Database.WALMode
	return database.OpenDatabase(dbconfig)
}

func parseNumber(arg string) int {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		exitErr("problem number", fmt.Errorf("'%s' is not a positive number", arg))
	}
	return n
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
