// Copyright 2025 The algocore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the algocore server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

algocore bundles two engines: a lexical index (trie, hash table and fuzzy
search over named in-memory word databases) and a grid pathfinder (Dijkstra,
A*, BFS and DFS with a replayable step log). Both are served over msgpack IPC
for editor and tool integration, and both can be driven from the terminal.

# Usage

Start the IPC server on stdin/stdout:

	algocore serve

Explore the seeded word database interactively:

	algocore shell

Run a search on a random grid and replay it:

	algocore path --algo astar --rows 15 --cols 40 --density 0.3 --replay 30ms

Race every algorithm on a grid file:

	algocore compare --grid maze.txt

# Configuration

A TOML file is created at the platform config dir on first run and can be
overridden with --config:

	[lexicon]
	fuzzy_distance = 2
	cache_size = 256

	[server]
	min_query_len = 1
	max_query_len = 60
	watch_config = true

The server reloads the file whenever it changes.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/algocore/internal/logger"
	"github.com/bastiangx/algocore/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	ucli "github.com/urfave/cli/v2"
)

const (
	Version = "0.1.0-beta"
	AppName = "algocore"
	gh      = "https://github.com/bastiangx/algocore"
)

// appState holds what the Before hook resolved for the subcommands.
type appState struct {
	config     *config.Config
	configPath string
}

var rt appState

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// printVersion shows the version banner.
func printVersion(_ *ucli.Context) {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ algocore ] word indexes and grid pathfinding")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// setup loads the config and applies the log level before any command runs.
func setup(c *ucli.Context) error {
	cfg, path, err := config.LoadConfigWithPriority(c.String("config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	rt = appState{config: cfg, configPath: path}
	logger.Setup(cfg.Log.Level, c.Bool("debug"))
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(path))
	return nil
}

// main only wires flags to commands; the commands hold no engine logic.
func main() {
	sigHandler()
	ucli.VersionPrinter = printVersion

	app := &ucli.App{
		Name:                   AppName,
		Usage:                  "Word indexes and grid pathfinding over msgpack IPC",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:  "config",
				Usage: "Config file path (default: platform config dir)",
			},
			&ucli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Toggle debug mode",
			},
		},
		Before: setup,
		Commands: []*ucli.Command{
			serveCommand(),
			shellCommand(),
			pathCommand(),
			compareCommand(),
			importCommand(),
			configCommand(),
		},
		Action: runServe,
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
