// Package cli handles the interactive lexicon shell and terminal rendering of
// pathfinding runs, for debugging and trying features in real time.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/algocore/internal/logger"
	"github.com/bastiangx/algocore/internal/utils"
	"github.com/bastiangx/algocore/pkg/dictionary"
	"github.com/bastiangx/algocore/pkg/lexicon"
	"github.com/charmbracelet/log"
)

const shellHelp = `commands:
  <prefix>               exact prefix search
  ~<word>                fuzzy search
  :add <word> [freq] [category]
  :lookup <word>         hash table lookup
  :words                 list the active database
  :dbs                   list databases
  :new <name> [desc]     create a database
  :use <name>            switch database
  :rm <name>             delete a database
  :import <glob>         import .csv/.txt files
  :help
  :quit`

// ShellOptions holds the knobs of an InputHandler.
type ShellOptions struct {
	MinQueryLen   int
	MaxQueryLen   int
	// FuzzyDistance caps the edit budget, which otherwise scales with the query.
	FuzzyDistance int
	// DefaultMode is "exact" or "fuzzy" and applies to plain input.
	DefaultMode string
	NoFilter    bool
	Color       bool
}

// InputHandler runs a line oriented shell over a dictionary.Manager.
type InputHandler struct {
	manager      *dictionary.Manager
	opts         ShellOptions
	out          *log.Logger
	requestCount int
}

// NewInputHandler creates a shell writing to w.
func NewInputHandler(manager *dictionary.Manager, opts ShellOptions, w io.Writer) *InputHandler {
	if opts.FuzzyDistance < 0 {
		opts.FuzzyDistance = lexicon.DefaultMaxDistance
	}
	return &InputHandler{
		manager: manager,
		opts:    opts,
		out:     logger.NewWithConfig(w, "", log.InfoLevel, false, false, log.TextFormatter),
	}
}

// Start reads commands from r until EOF or :quit.
func (h *InputHandler) Start(r io.Reader) error {
	h.out.Print("algocore shell [BETA]")
	h.out.Print("type a prefix and press Enter, :help for commands (Ctrl+D to exit):")

	scanner := bufio.NewScanner(r)
	for {
		h.out.Printf("[%s] > ", h.manager.ActiveName())
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == ":quit" || line == ":q" {
			return nil
		}
		h.handleInput(line)
	}
}

func (h *InputHandler) handleInput(line string) {
	h.requestCount++
	log.Debug("Shell input", "count", h.requestCount, "line", line)

	switch {
	case strings.HasPrefix(line, ":"):
		h.handleCommand(line[1:])
	case strings.HasPrefix(line, "~"):
		h.search(strings.TrimSpace(line[1:]), true)
	default:
		h.search(line, h.opts.DefaultMode == "fuzzy")
	}
}

func (h *InputHandler) search(query string, fuzzy bool) {
	if !utils.LengthWithin(query, h.opts.MinQueryLen, h.opts.MaxQueryLen) {
		h.out.Errorf("Query length must be within [%d, %d]: '%s'", h.opts.MinQueryLen, h.opts.MaxQueryLen, utils.Truncate(query, 20))
		return
	}
	if !h.opts.NoFilter && !utils.IsValidInput(query) {
		h.out.Warnf("No results found for '%s' (filtered out)", query)
		return
	}

	db := h.manager.ActiveName()
	start := time.Now()
	if fuzzy {
		distance := min(lexicon.AdaptiveDistance(query), h.opts.FuzzyDistance)
		results := h.manager.SearchFuzzy(db, query, distance)
		log.Debugf("Took [ %v ] for fuzzy '%s'", time.Since(start), query)
		if len(results) == 0 {
			h.out.Warnf("No fuzzy matches for '%s'", query)
			return
		}
		h.out.Printf("Found %d fuzzy matches for '%s':", len(results), query)
		for i, r := range results {
			h.out.Printf("%2d. %-30s (freq: %8s, distance: %d)", i+1, h.word(r.Word), utils.FormatWithCommas(r.Frequency), r.Distance)
		}
		return
	}

	results := h.manager.SearchExact(db, query)
	log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), query)
	if len(results) == 0 {
		h.out.Warnf("No suggestions found for prefix: '%s'", query)
		return
	}
	h.printResults(fmt.Sprintf("Found %d suggestions for prefix '%s':", len(results), query), results)
}

func (h *InputHandler) printResults(title string, results []lexicon.Result) {
	h.out.Print(title)
	for i, r := range results {
		h.out.Printf("%2d. %-30s (freq: %8s, %s)", i+1, h.word(r.Word), utils.FormatWithCommas(r.Frequency), r.Metadata.Category)
	}
}

func (h *InputHandler) word(w string) string {
	if !h.opts.Color {
		return w
	}
	return fmt.Sprintf("\033[38;5;75m%s\033[0m", w)
}

func (h *InputHandler) handleCommand(cmd string) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		h.out.Print(shellHelp)
		return
	}
	args := fields[1:]
	active := h.manager.ActiveName()

	switch fields[0] {
	case "help", "h":
		h.out.Print(shellHelp)

	case "add":
		if len(args) == 0 {
			h.out.Error("usage: :add <word> [freq] [category]")
			return
		}
		freq := 1
		if len(args) > 1 {
			f, err := strconv.Atoi(args[1])
			if err != nil {
				h.out.Errorf("Invalid frequency '%s'", args[1])
				return
			}
			freq = f
		}
		category := ""
		if len(args) > 2 {
			category = args[2]
		}
		if !h.manager.InsertData(active, args[0], dictionary.NewEntry(args[0], freq, category, "")) {
			h.out.Errorf("Could not add '%s'", args[0])
			return
		}
		h.out.Printf("Added '%s' to %s", strings.ToLower(args[0]), active)

	case "lookup":
		if len(args) == 0 {
			h.out.Error("usage: :lookup <word>")
			return
		}
		entry, freq, ok := h.manager.Lookup(active, args[0])
		if !ok {
			h.out.Warnf("'%s' is not in %s", args[0], active)
			return
		}
		h.out.Printf("%s: freq %s, %s, %s", h.word(strings.ToLower(args[0])), utils.FormatWithCommas(freq), entry.Category, entry.Description)

	case "words":
		words := h.manager.AllWords(active)
		if len(words) == 0 {
			h.out.Warnf("%s is empty", active)
			return
		}
		h.printResults(fmt.Sprintf("%s holds %s words:", active, utils.FormatWithCommas(len(words))), words)

	case "dbs":
		for _, info := range h.manager.Databases() {
			marker := " "
			if info.Name == active {
				marker = "*"
			}
			h.out.Printf("%s %-20s %8s words  %s", marker, info.Name, utils.FormatWithCommas(info.Trie.TotalWords), info.Description)
		}

	case "new":
		if len(args) == 0 {
			h.out.Error("usage: :new <name> [description]")
			return
		}
		h.manager.CreateDatabase(args[0], strings.Join(args[1:], " "))
		h.out.Printf("Created %s", args[0])

	case "use":
		if len(args) == 0 || !h.manager.SetActive(args[0]) {
			h.out.Errorf("Unknown database: %s", strings.Join(args, " "))
			return
		}
		h.out.Printf("Using %s", args[0])

	case "rm":
		if len(args) == 0 || !h.manager.DeleteDatabase(args[0]) {
			h.out.Errorf("Cannot delete %s", strings.Join(args, " "))
			return
		}
		h.out.Printf("Deleted %s", args[0])

	case "import":
		if len(args) == 0 {
			h.out.Error("usage: :import <glob>")
			return
		}
		report, err := h.manager.ImportFiles(active, args[0])
		if err != nil {
			h.out.Errorf("Import failed: %v", err)
			return
		}
		h.out.Printf("Imported %s words into %s (%d skipped, %d duplicates)",
			utils.FormatWithCommas(report.Inserted), active, report.Skipped, report.Duplicates)

	default:
		h.out.Errorf("Unknown command :%s (try :help)", fields[0])
	}
}
