// Command probmgr maintains the problems directory served by cmd/web
package main

import (
	"os"

	"github.com/go-while/go-probview/internal/cli"
	"github.com/go-while/go-probview/internal/config"
)

var appVersion = "-unset-"

func main() {
	config.AppVersion = appVersion
	cli.RootCmd.Version = appVersion
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
