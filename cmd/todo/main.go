package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/todolist/internal/cli"
	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", "", "path to a TOML config file (default ./"+config.DefaultFileName+")")
	theme := flag.String("theme", "", "color theme: classic, neon or mono")
	labels := flag.String("labels", "", "label set: en or ko")
	keys := flag.String("keys", "", "key policy: counter or last")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error")
	groupPending := flag.Bool("group", false, "group output by pending/done")
	asJSON := flag.Bool("json", false, "print the final batch list as JSON")
	flag.Parse()

	// flags win over file and environment
	cfg, err := config.Load(*configPath, func(c *config.Config) {
		if *theme != "" {
			c.Theme = *theme
		}
		if *labels != "" {
			c.Labels = *labels
		}
		if *keys != "" {
			c.KeyPolicy = *keys
		}
		if *logLevel != "" {
			c.LogLevel = *logLevel
		}
	})
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := ui.SetTheme(cfg.Theme); err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(2)
	}

	// Hand the remaining args to the CLI runner.
	code := cli.Run(flag.Args(), cli.Options{
		Group:  *groupPending,
		JSON:   *asJSON,
		Config: cfg,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
