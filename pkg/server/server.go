package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/bastiangx/algocore/internal/logger"
	"github.com/bastiangx/algocore/internal/utils"
	"github.com/bastiangx/algocore/pkg/config"
	"github.com/bastiangx/algocore/pkg/dictionary"
	"github.com/bastiangx/algocore/pkg/lexicon"
	"github.com/bastiangx/algocore/pkg/pathfind"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	modeExact = "exact"
	modeFuzzy = "fuzzy"
)

// Server handles msgpack IPC for the lexicon and pathfinding engines.
type Server struct {
	manager    *dictionary.Manager
	config     *config.Config
	configPath string
	decoder    *msgpack.Decoder
	writer     *bufio.Writer
	encoder    *msgpack.Encoder
	logger     *log.Logger

	requestCount int
	mu           sync.RWMutex
}

// NewServer creates a server reading requests from r and writing responses
// to w. A non-empty configPath is watched for changes when the config asks
// for it.
func NewServer(manager *dictionary.Manager, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bw := bufio.NewWriter(w)
	return &Server{
		manager:    manager,
		config:     cfg,
		configPath: configPath,
		decoder:    msgpack.NewDecoder(bufio.NewReader(r)),
		writer:     bw,
		encoder:    msgpack.NewEncoder(bw),
		logger:     logger.New("ipc"),
	}
}

// Config returns the config currently in use.
func (s *Server) Config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *Server) setConfig(cfg *config.Config) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
	s.logger.Info("Config reloaded", "minQueryLen", cfg.Server.MinQueryLen, "maxQueryLen", cfg.Server.MaxQueryLen)
}

// Start serves requests until the input ends or ctx is cancelled.
// Cancellation is observed between requests.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Debug("Starting server")

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	if s.configPath != "" && s.Config().Server.WatchConfig {
		watcher, err := config.NewWatcher(s.configPath, s.setConfig)
		if err != nil {
			s.logger.Warn("Config watching disabled", "err", err)
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := watcher.Run(ctx); err != nil {
					s.logger.Error("Config watcher stopped", "err", err)
				}
			}()
		}
	}

	s.sendResponse(map[string]string{"status": "ready"})

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		var raw msgpack.RawMessage
		if err := s.decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.logger.Errorf("Reading request frame: %v", err)
			s.sendError("", "Malformed request frame", 400)
			return err
		}
		s.handleFrame(ctx, raw)
	}
}

func (s *Server) handleFrame(ctx context.Context, raw msgpack.RawMessage) {
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.logger.Debugf("Unmarshaling request: %v", err)
		s.sendError("", "Invalid msgpack request", 400)
		return
	}

	s.mu.Lock()
	s.requestCount++
	count := s.requestCount
	s.mu.Unlock()
	if count%100 == 0 {
		s.logger.Debug("Served requests", "count", count)
	}

	switch req.Action {
	case "search":
		s.handleSearch(req)
	case "words":
		s.handleWords(req)
	case "lookup":
		s.handleLookup(req)
	case "insert":
		s.handleInsert(req)
	case "import":
		s.handleImport(req)
	case "db_create", "db_delete", "db_use", "db_list":
		s.handleDatabase(req)
	case "path":
		s.handlePath(req)
	case "compare":
		s.handleCompare(ctx, req)
	case "health":
		s.sendResponse(map[string]any{"id": req.ID, "status": "ok", "requests": count})
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), 400)
	}
}

// sendResponse encodes response as one msgpack frame and flushes it.
func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.logger.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{ID: id, Error: message, Code: code})
}

// database resolves the request's database, defaulting to the active one.
func (s *Server) database(req Request) (string, bool) {
	name := req.DB
	if name == "" {
		name = s.manager.ActiveName()
	}
	if _, ok := s.manager.Get(name); !ok {
		s.sendError(req.ID, fmt.Sprintf("Unknown database: %s", name), 404)
		return "", false
	}
	return name, true
}

func (s *Server) handleSearch(req Request) {
	cfg := s.Config()
	minLen, maxLen := cfg.Server.MinQueryLen, cfg.Server.MaxQueryLen
	if !utils.LengthWithin(req.Query, minLen, maxLen) {
		s.sendError(req.ID, fmt.Sprintf("Query length must be within [%d, %d]", minLen, maxLen), 400)
		return
	}

	name, ok := s.database(req)
	if !ok {
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = modeExact
	}

	start := time.Now()
	var suggestions []Suggestion
	switch mode {
	case modeExact:
		suggestions = fromResults(s.manager.SearchExact(name, req.Query))
	case modeFuzzy:
		// Without an explicit d the budget scales with the query, capped by config.
		distance := min(lexicon.AdaptiveDistance(req.Query), cfg.Lexicon.FuzzyDistance)
		if req.Distance != nil {
			distance = *req.Distance
		}
		if distance < 0 {
			s.sendError(req.ID, "Distance must not be negative", 400)
			return
		}
		suggestions = fromFuzzy(s.manager.SearchFuzzy(name, req.Query, distance))
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown search mode: %s", mode), 400)
		return
	}

	s.sendResponse(SearchResponse{
		ID:          req.ID,
		DB:          name,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   time.Since(start).Microseconds(),
	})
}

func (s *Server) handleWords(req Request) {
	name, ok := s.database(req)
	if !ok {
		return
	}
	start := time.Now()
	suggestions := fromResults(s.manager.AllWords(name))
	s.sendResponse(SearchResponse{
		ID:          req.ID,
		DB:          name,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   time.Since(start).Microseconds(),
	})
}

func (s *Server) handleLookup(req Request) {
	name, ok := s.database(req)
	if !ok {
		return
	}
	entry, freq, found := s.manager.Lookup(name, req.Word)
	resp := LookupResponse{ID: req.ID, Word: req.Word, Found: found}
	if found {
		resp.Frequency = freq
		resp.Category = entry.Category
		resp.Description = entry.Description
	}
	s.sendResponse(resp)
}

func (s *Server) handleInsert(req Request) {
	if req.Word == "" {
		s.sendError(req.ID, "Missing 'word' parameter", 400)
		return
	}
	name, ok := s.database(req)
	if !ok {
		return
	}

	freq := req.Frequency
	if freq == 0 {
		freq = 1
	}
	entry := dictionary.NewEntry(req.Word, freq, req.Category, req.Description)
	if !s.manager.InsertData(name, req.Word, entry) {
		s.sendError(req.ID, "Word rejected", 400)
		return
	}
	s.sendResponse(StatusResponse{ID: req.ID, Status: "ok"})
}

func (s *Server) handleImport(req Request) {
	name, ok := s.database(req)
	if !ok {
		return
	}
	report, err := s.manager.Import(name, strings.NewReader(req.Text))
	if err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}
	s.logger.Debug("Imported", "db", name, "inserted", report.Inserted, "skipped", report.Skipped)
	s.sendResponse(ImportResponse{
		ID:         req.ID,
		Status:     "ok",
		Lines:      report.Lines,
		Inserted:   report.Inserted,
		Skipped:    report.Skipped,
		Duplicates: report.Duplicates,
	})
}

func (s *Server) handleDatabase(req Request) {
	switch req.Action {
	case "db_create":
		if s.manager.CreateDatabase(req.DB, req.Description) == nil {
			s.sendError(req.ID, "Missing 'db' parameter", 400)
			return
		}
	case "db_delete":
		if req.DB == dictionary.DefaultDatabase {
			s.sendError(req.ID, fmt.Sprintf("Cannot delete %s", req.DB), 403)
			return
		}
		if !s.manager.DeleteDatabase(req.DB) {
			s.sendError(req.ID, fmt.Sprintf("Unknown database: %s", req.DB), 404)
			return
		}
	case "db_use":
		if !s.manager.SetActive(req.DB) {
			s.sendError(req.ID, fmt.Sprintf("Unknown database: %s", req.DB), 404)
			return
		}
	}

	active := s.manager.ActiveName()
	infos := s.manager.Databases()
	dbs := make([]DatabaseInfo, len(infos))
	for i, info := range infos {
		dbs[i] = DatabaseInfo{
			Name:         info.Name,
			Description:  info.Description,
			Created:      info.Created.UnixMilli(),
			LastModified: info.LastModified.UnixMilli(),
			Words:        info.Trie.TotalWords,
			MaxDepth:     info.Trie.MaxDepth,
			Nodes:        info.Trie.NodeCount,
			Capacity:     info.Table.Capacity,
			LoadFactor:   info.Table.LoadFactor,
			Collisions:   info.Table.Collisions,
			Active:       info.Name == active,
		}
	}
	s.sendResponse(DatabaseResponse{ID: req.ID, Status: "ok", Active: active, Databases: dbs})
}

// grid parses the request grid, or builds the configured default grid.
func (s *Server) grid(req Request) (*pathfind.Grid, error) {
	if len(req.Grid) > 0 {
		return pathfind.ParseGrid(req.Grid)
	}
	cfg := s.Config()
	return pathfind.NewGrid(cfg.Grid.Rows, cfg.Grid.Cols)
}

func (s *Server) handlePath(req Request) {
	cfg := s.Config()
	name := req.Algorithm
	if name == "" {
		name = cfg.Grid.Algorithm
	}
	algo, err := pathfind.ParseAlgorithm(name)
	if err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}
	g, err := s.grid(req)
	if err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}

	trace := cfg.Server.IncludeSteps
	if req.Trace != nil {
		trace = *req.Trace
	}
	var opts []pathfind.Option
	if !trace {
		opts = append(opts, pathfind.WithoutDistances())
	}

	result, err := pathfind.Run(algo, g, opts...)
	if err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}
	s.sendResponse(PathResponse{ID: req.ID, Result: fromPathResult(result, trace)})
}

func (s *Server) handleCompare(ctx context.Context, req Request) {
	g, err := s.grid(req)
	if err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}
	results, err := pathfind.Compare(ctx, g, nil, pathfind.WithoutDistances())
	if err != nil {
		s.sendError(req.ID, err.Error(), 500)
		return
	}
	resp := CompareResponse{ID: req.ID, Results: make([]PathResult, len(results))}
	for i, r := range results {
		resp.Results[i] = fromPathResult(r, false)
	}
	s.sendResponse(resp)
}

func fromResults(results []lexicon.Result) []Suggestion {
	ranks := utils.CreateRankList(len(results))
	out := make([]Suggestion, len(results))
	for i, r := range results {
		out[i] = Suggestion{Word: r.Word, Frequency: r.Frequency, Rank: ranks[i], Category: r.Metadata.Category}
	}
	return out
}

func fromFuzzy(results []lexicon.FuzzyResult) []Suggestion {
	ranks := utils.CreateRankList(len(results))
	out := make([]Suggestion, len(results))
	for i, r := range results {
		out[i] = Suggestion{
			Word:      r.Word,
			Frequency: r.Frequency,
			Rank:      ranks[i],
			Distance:  r.Distance,
			Category:  r.Metadata.Category,
		}
	}
	return out
}

func fromPositions(ps []pathfind.Position) []Point {
	out := make([]Point, len(ps))
	for i, p := range ps {
		out[i] = Point{Row: p.Row, Col: p.Col}
	}
	return out
}

func fromPathResult(r pathfind.Result, trace bool) PathResult {
	out := PathResult{
		Algorithm:  string(r.Algorithm),
		Success:    r.Success,
		Path:       fromPositions(r.Path),
		Length:     r.PathLength,
		Explored:   r.CellsExplored,
		Efficiency: r.Efficiency,
		TimeTaken:  r.Duration.Microseconds(),
		Digest:     r.Digest(),
	}
	if !trace {
		return out
	}
	out.Steps = make([]PathStep, len(r.Steps))
	for i, st := range r.Steps {
		step := PathStep{
			Description: st.Description,
			Visited:     fromPositions(st.Visited),
			Frontier:    fromPositions(st.Frontier),
			Distances:   st.Distances,
		}
		if st.Current != nil {
			step.Current = &Point{Row: st.Current.Row, Col: st.Current.Col}
		}
		if st.Path != nil {
			step.Path = fromPositions(st.Path)
		}
		out.Steps[i] = step
	}
	return out
}
