package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/bastiangx/algocore/internal/cli"
	"github.com/bastiangx/algocore/internal/utils"
	"github.com/bastiangx/algocore/pkg/config"
	"github.com/bastiangx/algocore/pkg/dictionary"
	"github.com/bastiangx/algocore/pkg/pathfind"
	"github.com/bastiangx/algocore/pkg/server"
	"github.com/charmbracelet/log"
	ucli "github.com/urfave/cli/v2"
)

func newManager(c *ucli.Context) *dictionary.Manager {
	opts := []dictionary.Option{dictionary.WithCacheSize(rt.config.Lexicon.CacheSize)}
	if c.Bool("no-seed") || !rt.config.Lexicon.Seed {
		opts = append(opts, dictionary.WithoutSeed())
	}
	return dictionary.NewManager(opts...)
}

var noSeedFlag = &ucli.BoolFlag{Name: "no-seed", Usage: "Start with an empty default database"}

func serveCommand() *ucli.Command {
	return &ucli.Command{
		Name:   "serve",
		Usage:  "Run the msgpack IPC server on stdin/stdout",
		Flags:  []ucli.Flag{noSeedFlag},
		Action: runServe,
	}
}

func runServe(c *ucli.Context) error {
	manager := newManager(c)
	showStartupInfo(manager)

	srv := server.NewServer(manager, rt.config, rt.configPath, os.Stdin, os.Stdout)
	if err := srv.Start(c.Context); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(manager *dictionary.Manager) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("Active database: %s (%s words)", manager.ActiveName(), utils.FormatWithCommas(manager.Active().Len()))
	log.Infof("Config: ( %s )", config.GetActiveConfigPath(rt.configPath))
	log.Info("status: ready")
}

func shellCommand() *ucli.Command {
	return &ucli.Command{
		Name:    "shell",
		Aliases: []string{"c"},
		Usage:   "Interactive lexicon shell -- useful for testing and debugging",
		Flags: []ucli.Flag{
			noSeedFlag,
			&ucli.StringFlag{Name: "mode", Usage: "Search mode for plain input: exact or fuzzy"},
			&ucli.IntFlag{Name: "min", Usage: "Minimum query length"},
			&ucli.IntFlag{Name: "max", Usage: "Maximum query length"},
			&ucli.BoolFlag{Name: "no-filter", Usage: "Disable input filtering (DBG only)"},
			&ucli.StringFlag{Name: "load", Usage: "Import files matching a glob before starting"},
		},
		Action: func(c *ucli.Context) error {
			cfg := rt.config
			opts := cli.ShellOptions{
				MinQueryLen:   cfg.Server.MinQueryLen,
				MaxQueryLen:   cfg.Server.MaxQueryLen,
				FuzzyDistance: cfg.Lexicon.FuzzyDistance,
				DefaultMode:   cfg.CLI.DefaultMode,
				NoFilter:      cfg.CLI.NoFilter || c.Bool("no-filter"),
				Color:         cfg.CLI.Color,
			}
			if c.IsSet("mode") {
				opts.DefaultMode = c.String("mode")
			}
			if c.IsSet("min") {
				opts.MinQueryLen = c.Int("min")
			}
			if c.IsSet("max") {
				opts.MaxQueryLen = c.Int("max")
			}

			manager := newManager(c)
			if pattern := c.String("load"); pattern != "" {
				report, err := manager.ImportFiles(manager.ActiveName(), pattern)
				if err != nil {
					return err
				}
				log.Debugf("Loaded %d words from %s", report.Inserted, pattern)
			}

			log.Debug("Shell options", "min", opts.MinQueryLen, "max", opts.MaxQueryLen, "mode", opts.DefaultMode, "noFilter", opts.NoFilter)
			return cli.NewInputHandler(manager, opts, os.Stdout).Start(os.Stdin)
		},
	}
}

func gridFlags() []ucli.Flag {
	return []ucli.Flag{
		&ucli.StringFlag{Name: "grid", Aliases: []string{"g"}, Usage: "Read the grid from a text file ('.', '#', 'S', 'E')"},
		&ucli.IntFlag{Name: "rows", Usage: "Rows of a generated grid"},
		&ucli.IntFlag{Name: "cols", Usage: "Columns of a generated grid"},
		&ucli.Float64Flag{Name: "density", Value: 0.25, Usage: "Wall probability of a generated grid"},
		&ucli.Int64Flag{Name: "seed", Usage: "Random seed of a generated grid (default: time based)"},
		&ucli.BoolFlag{Name: "no-color", Usage: "Plain output"},
	}
}

// loadGrid reads --grid or generates a random grid.
func loadGrid(c *ucli.Context) (*pathfind.Grid, error) {
	if path := c.String("grid"); path != "" {
		return readGridFile(utils.ResolveRelativePath(path))
	}

	rows, cols := rt.config.Grid.Rows, rt.config.Grid.Cols
	if c.IsSet("rows") {
		rows = c.Int("rows")
	}
	if c.IsSet("cols") {
		cols = c.Int("cols")
	}
	g, err := pathfind.NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}

	seed := c.Int64("seed")
	if !c.IsSet("seed") {
		seed = time.Now().UnixNano()
	}
	walls := g.Scatter(c.Float64("density"), rand.New(rand.NewSource(seed)))
	log.Debugf("Generated %dx%d grid with %d walls (seed %d)", rows, cols, walls, seed)
	return g, nil
}

func readGridFile(path string) (*pathfind.Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open grid %s: %w", path, err)
	}
	defer file.Close()

	g, err := pathfind.ReadGrid(file)
	if err != nil {
		return nil, fmt.Errorf("reading grid %s: %w", path, err)
	}
	return g, nil
}

func renderer(c *ucli.Context) cli.GridRenderer {
	return cli.GridRenderer{Color: rt.config.CLI.Color && !c.Bool("no-color")}
}

func pathCommand() *ucli.Command {
	return &ucli.Command{
		Name:  "path",
		Usage: "Run one pathfinding algorithm and draw the result",
		Flags: append(gridFlags(),
			&ucli.StringFlag{Name: "algo", Aliases: []string{"a"}, Usage: "dijkstra, astar, bfs or dfs"},
			&ucli.DurationFlag{Name: "replay", Usage: "Draw every step with this delay between steps"},
		),
		Action: func(c *ucli.Context) error {
			name := rt.config.Grid.Algorithm
			if c.IsSet("algo") {
				name = c.String("algo")
			}
			algo, err := pathfind.ParseAlgorithm(name)
			if err != nil {
				return err
			}
			g, err := loadGrid(c)
			if err != nil {
				return err
			}

			var opts []pathfind.Option
			if c.Duration("replay") <= 0 {
				opts = append(opts, pathfind.WithoutDistances())
			}
			res, err := pathfind.Run(algo, g, opts...)
			if err != nil {
				return err
			}
			return renderer(c).Replay(os.Stdout, g, res, c.Duration("replay"))
		},
	}
}

func compareCommand() *ucli.Command {
	return &ucli.Command{
		Name:  "compare",
		Usage: "Run every algorithm on the same grid",
		Flags: gridFlags(),
		Action: func(c *ucli.Context) error {
			g, err := loadGrid(c)
			if err != nil {
				return err
			}
			results, err := pathfind.Compare(c.Context, g, nil, pathfind.WithoutDistances())
			if err != nil {
				return err
			}
			r := renderer(c)
			fmt.Println(r.Render(g, pathfind.Step{}))
			fmt.Println(r.Comparison(results))
			return nil
		},
	}
}

func importCommand() *ucli.Command {
	return &ucli.Command{
		Name:      "import",
		Usage:     "Check word files by importing them into a scratch database",
		ArgsUsage: "<glob>",
		Action: func(c *ucli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("missing file pattern")
			}
			manager := dictionary.NewManager(dictionary.WithoutSeed())
			for _, pattern := range c.Args().Slice() {
				report, err := manager.ImportFiles(dictionary.DefaultDatabase, pattern)
				if err != nil {
					return err
				}
				fmt.Printf("%s: %s lines, %s inserted, %d skipped, %d duplicates\n", pattern,
					utils.FormatWithCommas(report.Lines), utils.FormatWithCommas(report.Inserted), report.Skipped, report.Duplicates)
			}
			info := manager.Active().Info()
			fmt.Printf("total: %s words, trie depth %d, %s nodes, table load %.2f\n",
				utils.FormatWithCommas(info.Trie.TotalWords), info.Trie.MaxDepth,
				utils.FormatWithCommas(info.Trie.NodeCount), info.Table.LoadFactor)
			return nil
		},
	}
}

func configCommand() *ucli.Command {
	return &ucli.Command{
		Name:  "config",
		Usage: "Show or update the config file",
		Flags: []ucli.Flag{
			&ucli.BoolFlag{Name: "rebuild", Usage: "Rewrite the default config file with defaults"},
			&ucli.IntFlag{Name: "min-query", Usage: "Set server min_query_len"},
			&ucli.IntFlag{Name: "max-query", Usage: "Set server max_query_len"},
			&ucli.BoolFlag{Name: "steps", Usage: "Set server include_steps"},
		},
		Action: func(c *ucli.Context) error {
			if c.Bool("rebuild") {
				if err := config.RebuildConfigFile(); err != nil {
					return err
				}
				fmt.Println("Rebuilt", config.GetActiveConfigPath(""))
				return nil
			}

			var minLen, maxLen *int
			var steps *bool
			if c.IsSet("min-query") {
				v := c.Int("min-query")
				minLen = &v
			}
			if c.IsSet("max-query") {
				v := c.Int("max-query")
				maxLen = &v
			}
			if c.IsSet("steps") {
				v := c.Bool("steps")
				steps = &v
			}
			if minLen != nil || maxLen != nil || steps != nil {
				if rt.configPath == "" {
					return fmt.Errorf("no config file to update")
				}
				if err := rt.config.Update(rt.configPath, minLen, maxLen, steps); err != nil {
					return err
				}
			}

			fmt.Println(config.GetActiveConfigPath(rt.configPath))
			s := rt.config.Server
			fmt.Printf("min_query_len=%d max_query_len=%d include_steps=%t watch_config=%t\n",
				s.MinQueryLen, s.MaxQueryLen, s.IncludeSteps, s.WatchConfig)
			return nil
		},
	}
}
