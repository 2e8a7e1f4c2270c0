// Web server for the go-probview problem archive
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	prof "github.com/go-while/go-cpu-mem-profiler"
	"github.com/go-while/go-probview/internal/config"
	"github.com/go-while/go-probview/internal/corpus"
	"github.com/go-while/go-probview/internal/database"
	"github.com/go-while/go-probview/internal/indexer"
	"github.com/go-while/go-probview/internal/registry"
	"github.com/go-while/go-probview/internal/web"
)

var (
	// command-line flags
	configFile  string
	webport     int
	webssl      bool
	webcertFile string
	webkeyFile  string
	problemsDir string
	dbPath      string
	reindex     string
	noIndexDB   bool
	pprofAddr   string
)

var appVersion = "-unset-"

func main() {
	config.AppVersion = appVersion

	flag.StringVar(&configFile, "config", "", "YAML config file (or $PROBVIEW_CONFIG)")
	flag.IntVar(&webport, "webport", 0, "Web server port (default: 11980)")
	flag.BoolVar(&webssl, "webssl", false, "Enable SSL")
	flag.StringVar(&webcertFile, "websslcert", "", "SSL certificate file (/path/to/fullchain.pem)")
	flag.StringVar(&webkeyFile, "websslkey", "", "SSL key file (/path/to/privkey.pem)")
	flag.StringVar(&problemsDir, "problems", "", "Problems directory (default: ./problems)")
	flag.StringVar(&dbPath, "db", "", "Index database path (default: ./data/probview.sq3)")
	flag.StringVar(&reindex, "reindex", "", "cron spec for background re-indexing, 'off' disables it (default: @every 5m)")
	flag.BoolVar(&noIndexDB, "nodb", false, "Run without the index database, the registry is built from records on disk")
	flag.StringVar(&pprofAddr, "pprof", "", "Serve pprof on this address, e.g. :51111")
	flag.Parse()

	log.Printf("Starting go-probview: Web Server (version: %s)", appVersion)

	mainConfig, err := config.LoadFile(configFile)
	if err != nil {
		log.Fatalf("[WEB]: Error loading config: %v", err)
	}

	// Override config with command-line flags if provided
	if webport > 0 {
		mainConfig.Web.ListenPort = webport
	}
	if webssl {
		mainConfig.Web.SSL = true
	}
	if webcertFile != "" {
		mainConfig.Web.CertFile = webcertFile
	}
	if webkeyFile != "" {
		mainConfig.Web.KeyFile = webkeyFile
	}
	if problemsDir != "" {
		mainConfig.Corpus.ProblemsDir = problemsDir
	}
	if dbPath != "" {
		mainConfig.Database.Path = dbPath
	}
	if reindex == "off" {
		mainConfig.Index.Schedule = ""
	} else if reindex != "" {
		mainConfig.Index.Schedule = reindex
	}
	if err := mainConfig.Validate(); err != nil {
		log.Fatalf("[WEB]: Invalid configuration: %v", err)
	}
	log.Printf("[WEB]: Config - port: %d, ssl: %t, problems: %s, db: %s", mainConfig.Web.ListenPort, mainConfig.Web.SSL, mainConfig.Corpus.ProblemsDir, mainConfig.Database.Path)

	if pprofAddr != "" {
		profiler := prof.NewProf()
		go profiler.PprofWeb(pprofAddr)
		log.Printf("[WEB]: pprof listening on %s", pprofAddr)
	}

	var db *database.Database
	if !noIndexDB {
		dbconfig := database.DefaultDBConfig()
		dbconfig.Path = mainConfig.Database.Path
		dbconfig.WALMode = mainConfig.Database.WALMode
		db, err = database.OpenDatabase(dbconfig)
		if err != nil {
			log.Fatalf("[WEB]: Failed to open database: %v", err)
		}
	}

	crp := corpus.New(mainConfig.Corpus.ProblemsDir, mainConfig.Corpus.LanguagesFile, mainConfig.Corpus.DefaultTemplate)
	reg := registry.New(mainConfig.Corpus.ProblemsDir)
	idx := indexer.New(crp, db, reg)

	if err := idx.LoadRegistry(); err != nil {
		log.Printf("[WEB]: Warning: loading registry: %v", err)
	}
	if mainConfig.Index.OnStartup {
		if run, err := idx.RunOnce(context.Background()); err != nil {
			log.Printf("[WEB]: Warning: startup index run failed: %v", err)
		} else {
			log.Printf("[WEB]: startup index run %s: %d indexed, %d failed, %d pruned", run.ID, run.Indexed, run.Failed, run.Pruned)
		}
	}
	if mainConfig.Index.Schedule != "" {
		if err := idx.Start(mainConfig.Index.Schedule); err != nil {
			log.Fatalf("[WEB]: Failed to schedule indexer: %v", err)
		}
	}

	server, err := web.NewServer(db, reg, &mainConfig.Web)
	if err != nil {
		log.Fatalf("[WEB]: Failed to create web server: %v", err)
	}

	// Set up cross-platform signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	webServerErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			webServerErrChan <- err
		}
	}()
	log.Printf("[WEB]: Server started successfully with %d problems. Press Ctrl+C to gracefully shutdown...", reg.Len())

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	updateFileChan := make(chan bool, 1)
	go monitorTriggerFiles(monitorCtx, idx, 30*time.Second, updateFileChan)

	// Wait for either shutdown signal, server error, or update file
	select {
	case <-sigChan:
		log.Printf("[WEB]: Received shutdown signal, initiating graceful shutdown...")
	case err := <-webServerErrChan:
		log.Fatalf("[WEB]: Failed to start web server: %v", err)
	case <-updateFileChan:
		log.Printf("[WEB]: Update file detected, initiating graceful shutdown for update...")
	}
	stopMonitor()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[WEB]: Error shutting down web server: %v", err)
	}

	log.Printf("[WEB]: Stopping indexer...")
	idx.Stop()

	if err := db.Close(); err != nil {
		log.Printf("[WEB]: Failed to close database: %v", err)
	} else {
		log.Printf("[WEB]: Database closed successfully")
	}
	log.Printf("[WEB]: Graceful shutdown completed")
}
