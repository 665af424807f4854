package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bastiangx/algocore/internal/utils"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
)

const (
	// BulkCategory is assigned to bulk lines without a category.
	BulkCategory = "bulk-import"
	// BulkFrequency is assigned when a bulk line has no usable frequency.
	BulkFrequency = 50
	// CustomCategory is assigned to single entries without a category.
	CustomCategory = "custom"
	// WordListCategory tags words read from plain word frequency lists.
	WordListCategory = "word-list"
)

var (
	// ErrUnknownDatabase is returned when an import targets a missing database.
	ErrUnknownDatabase = errors.New("dictionary: unknown database")
	// ErrNoFiles is returned when an import pattern matches nothing.
	ErrNoFiles = errors.New("dictionary: pattern matched no files")
)

// ImportReport summarizes one import pass.
type ImportReport struct {
	Lines      int
	Inserted   int
	Skipped    int
	Duplicates int
}

func (r *ImportReport) add(other ImportReport) {
	r.Lines += other.Lines
	r.Inserted += other.Inserted
	r.Skipped += other.Skipped
	r.Duplicates += other.Duplicates
}

// NewEntry builds a single entry with the defaults of a manual insert.
func NewEntry(word string, frequency int, category, description string) Entry {
	if category == "" {
		category = CustomCategory
	}
	if description == "" {
		description = "Custom entry: " + normalizeKey(word)
	}
	return Entry{Frequency: frequency, Category: category, Description: description}
}

// ParseLine reads one bulk line of the form word,category,frequency,description.
// Missing fields get defaults. It reports false when the word is empty.
func ParseLine(line string) (string, Entry, bool) {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	word := strings.ToLower(parts[0])
	if word == "" {
		return "", Entry{}, false
	}

	e := Entry{Category: BulkCategory, Frequency: BulkFrequency, Description: "Bulk imported: " + word}
	if len(parts) > 1 && parts[1] != "" {
		e.Category = parts[1]
	}
	if len(parts) > 2 {
		if f := leadingInt(parts[2]); f != 0 {
			e.Frequency = f
		}
	}
	if len(parts) > 3 && parts[3] != "" {
		e.Description = parts[3]
	}
	return word, e, true
}

// leadingInt parses an optional sign followed by leading decimal digits and
// ignores the rest, returning 0 when there are no digits.
func leadingInt(s string) int {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// parseWordListLine reads "word [frequency]".
func parseWordListLine(line string) (string, Entry, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", Entry{}, false
	}
	word := strings.ToLower(fields[0])
	freq := BulkFrequency
	if len(fields) > 1 {
		if f, err := strconv.Atoi(fields[1]); err == nil && f != 0 {
			freq = f
		}
	}
	return word, Entry{Frequency: freq, Category: WordListCategory, Description: "Word list entry: " + word}, true
}

// Import reads bulk lines from r into dbName. Malformed lines are skipped
// and never abort the batch.
func (m *Manager) Import(dbName string, r io.Reader) (ImportReport, error) {
	return m.importWith(dbName, r, ParseLine)
}

func (m *Manager) importWith(dbName string, r io.Reader, parse func(string) (string, Entry, bool)) (ImportReport, error) {
	var report ImportReport
	if _, ok := m.Get(dbName); !ok {
		return report, fmt.Errorf("%w: %s", ErrUnknownDatabase, dbName)
	}

	seen := utils.NewSeenFilter()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		report.Lines++

		word, entry, ok := parse(line)
		if !ok {
			report.Skipped++
			continue
		}
		if !seen.ShouldInclude(word) {
			report.Duplicates++
		}
		if m.InsertData(dbName, word, entry) {
			report.Inserted++
		} else {
			report.Skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return report, fmt.Errorf("reading import data: %w", err)
	}
	return report, nil
}

// ImportFiles imports every file matching a doublestar pattern such as
// "data/**/*.csv". The format of each file is detected from its extension;
// files of unknown format are skipped with a warning.
func (m *Manager) ImportFiles(dbName, pattern string) (ImportReport, error) {
	var total ImportReport

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return total, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return total, fmt.Errorf("%w: %s", ErrNoFiles, pattern)
	}

	for _, path := range matches {
		format, err := DetectFileFormat(path)
		if err != nil {
			log.Warnf("Skipping %s: %v", path, err)
			continue
		}

		report, err := m.importFile(dbName, path, format)
		if err != nil {
			return total, err
		}
		log.Debugf("Imported %s (%s): %d inserted, %d skipped", path, format, report.Inserted, report.Skipped)
		total.add(report)
	}
	return total, nil
}

func (m *Manager) importFile(dbName, path string, format FileFormat) (ImportReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return ImportReport{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	parse := ParseLine
	if format == FormatWordList {
		parse = parseWordListLine
	}
	return m.importWith(dbName, file, parse)
}
