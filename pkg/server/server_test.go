package server

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bastiangx/algocore/pkg/config"
	"github.com/bastiangx/algocore/pkg/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

// serve feeds frames through a fresh server and returns every response frame
// after the ready message.
func serve(t *testing.T, m *dictionary.Manager, frames ...any) []msgpack.RawMessage {
	t.Helper()

	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, f := range frames {
		require.NoError(t, enc.Encode(f))
	}

	var out bytes.Buffer
	s := NewServer(m, nil, "", &in, &out)
	require.NoError(t, s.Start(context.Background()))

	dec := msgpack.NewDecoder(&out)
	var ready map[string]string
	require.NoError(t, dec.Decode(&ready))
	require.Equal(t, "ready", ready["status"])

	var responses []msgpack.RawMessage
	for {
		var raw msgpack.RawMessage
		if err := dec.Decode(&raw); err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}
		responses = append(responses, raw)
	}
	return responses
}

func decode[T any](t *testing.T, raw msgpack.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, msgpack.Unmarshal(raw, &v))
	return v
}

func words(s []Suggestion) []string {
	out := make([]string, len(s))
	for i, sg := range s {
		out[i] = sg.Word
	}
	return out
}

func TestHealth(t *testing.T) {
	resp := serve(t, dictionary.NewManager(dictionary.WithoutSeed()),
		Request{ID: "h1", Action: "health"},
	)
	require.Len(t, resp, 1)

	health := decode[map[string]any](t, resp[0])
	assert.Equal(t, "h1", health["id"])
	assert.Equal(t, "ok", health["status"])
}

func TestSearchExact(t *testing.T) {
	resp := serve(t, dictionary.NewManager(),
		Request{ID: "q1", Action: "search", Query: "tr"},
	)
	require.Len(t, resp, 1)

	sr := decode[SearchResponse](t, resp[0])
	assert.Equal(t, "q1", sr.ID)
	assert.Equal(t, dictionary.DefaultDatabase, sr.DB)
	assert.Equal(t, 5, sr.Count)
	assert.Equal(t, []string{"transformation", "triumph", "tremendous", "treasure", "tranquility"}, words(sr.Suggestions))
	assert.Equal(t, uint32(1), sr.Suggestions[0].Rank)
	assert.Equal(t, 710, sr.Suggestions[0].Frequency)
}

func TestInsertAndFuzzySearch(t *testing.T) {
	resp := serve(t, dictionary.NewManager(dictionary.WithoutSeed()),
		Request{ID: "i1", Action: "insert", Word: "apple", Frequency: 100, Category: "noun"},
		Request{ID: "i2", Action: "insert", Word: "apply", Frequency: 120},
		Request{ID: "q1", Action: "search", Query: "aple", Mode: "fuzzy"},
		Request{ID: "q2", Action: "search", Query: "aple", Mode: "fuzzy", Distance: intPtr(1)},
		Request{ID: "l1", Action: "lookup", Word: "Apply"},
	)
	require.Len(t, resp, 5)

	assert.Equal(t, StatusResponse{ID: "i1", Status: "ok"}, decode[StatusResponse](t, resp[0]))

	fuzzy := decode[SearchResponse](t, resp[2])
	assert.Equal(t, []string{"apple", "apply"}, words(fuzzy.Suggestions))
	assert.Equal(t, 1, fuzzy.Suggestions[0].Distance)
	assert.Equal(t, "noun", fuzzy.Suggestions[0].Category)
	assert.Equal(t, 2, fuzzy.Suggestions[1].Distance)

	narrow := decode[SearchResponse](t, resp[3])
	assert.Equal(t, []string{"apple"}, words(narrow.Suggestions))

	lookup := decode[LookupResponse](t, resp[4])
	assert.True(t, lookup.Found)
	assert.Equal(t, 120, lookup.Frequency)
	assert.Equal(t, dictionary.CustomCategory, lookup.Category)
	assert.Equal(t, "Custom entry: apply", lookup.Description)
}

func TestFuzzyBudgetScalesWithQuery(t *testing.T) {
	m := dictionary.NewManager(dictionary.WithoutSeed())
	m.InsertData(dictionary.DefaultDatabase, "cat", dictionary.Entry{Frequency: 10})
	m.InsertData(dictionary.DefaultDatabase, "dog", dictionary.Entry{Frequency: 10})

	resp := serve(t, m,
		Request{ID: "f1", Action: "search", Query: "ab", Mode: "fuzzy"},
		Request{ID: "f2", Action: "search", Query: "ab", Mode: "fuzzy", Distance: intPtr(2)},
		Request{ID: "f3", Action: "search", Query: "ca", Mode: "fuzzy"},
	)
	require.Len(t, resp, 3)

	assert.Empty(t, decode[SearchResponse](t, resp[0]).Suggestions, "two letters allow one edit")
	assert.Equal(t, []string{"cat"}, words(decode[SearchResponse](t, resp[1]).Suggestions))
	assert.Equal(t, []string{"cat"}, words(decode[SearchResponse](t, resp[2]).Suggestions))
}

func TestUndecodableFrameEndsServing(t *testing.T) {
	var in bytes.Buffer
	require.NoError(t, msgpack.NewEncoder(&in).Encode(Request{ID: "ok", Action: "health"}))
	in.WriteByte(0xc1)

	var out bytes.Buffer
	s := NewServer(dictionary.NewManager(dictionary.WithoutSeed()), nil, "", &in, &out)
	require.Error(t, s.Start(context.Background()))

	dec := msgpack.NewDecoder(&out)
	var ready map[string]string
	require.NoError(t, dec.Decode(&ready))

	var list msgpack.RawMessage
	require.NoError(t, dec.Decode(&list))

	var resp ErrorResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "", resp.ID)
	assert.Equal(t, 400, resp.Code)
}

func TestRequestErrors(t *testing.T) {
	resp := serve(t, dictionary.NewManager(dictionary.WithoutSeed()),
		Request{ID: "e1", Action: "search", Query: ""},
		Request{ID: "e2", Action: "search", Query: strings.Repeat("a", 61)},
		Request{ID: "e3", Action: "search", Query: "a", DB: "missing"},
		Request{ID: "e4", Action: "search", Query: "a", Mode: "regex"},
		Request{ID: "e5", Action: "search", Query: "a", Mode: "fuzzy", Distance: intPtr(-1)},
		Request{ID: "e6", Action: "explode"},
		"not a request",
		Request{ID: "e7", Action: "insert"},
		Request{ID: "h1", Action: "health"},
	)
	require.Len(t, resp, 9)

	codes := map[string]int{}
	for _, raw := range resp[:8] {
		e := decode[ErrorResponse](t, raw)
		require.NotEmpty(t, e.Error)
		codes[e.ID] = e.Code
	}
	assert.Equal(t, map[string]int{
		"e1": 400, "e2": 400, "e3": 404, "e4": 400,
		"e5": 400, "e6": 400, "": 400, "e7": 400,
	}, codes)

	health := decode[map[string]any](t, resp[8])
	assert.Equal(t, "ok", health["status"], "stream continues after errors")
}

func TestDatabaseActions(t *testing.T) {
	resp := serve(t, dictionary.NewManager(dictionary.WithoutSeed()),
		Request{ID: "d1", Action: "db_create", DB: "animals", Description: "Animal names"},
		Request{ID: "d2", Action: "db_use", DB: "animals"},
		Request{ID: "d3", Action: "import", Text: "otter,noun,40\nlynx\n,noun,1\notter"},
		Request{ID: "d4", Action: "words"},
		Request{ID: "d5", Action: "db_delete", DB: dictionary.DefaultDatabase},
		Request{ID: "d6", Action: "db_delete", DB: "animals"},
		Request{ID: "d7", Action: "db_use", DB: "animals"},
		Request{ID: "d8", Action: "db_list"},
	)
	require.Len(t, resp, 8)

	created := decode[DatabaseResponse](t, resp[0])
	require.Len(t, created.Databases, 2)
	assert.Equal(t, "animals", created.Databases[0].Name)
	assert.Equal(t, "Animal names", created.Databases[0].Description)
	assert.Equal(t, dictionary.DefaultDatabase, created.Active)

	assert.Equal(t, "animals", decode[DatabaseResponse](t, resp[1]).Active)

	imported := decode[ImportResponse](t, resp[2])
	assert.Equal(t, ImportResponse{ID: "d3", Status: "ok", Lines: 4, Inserted: 3, Skipped: 1, Duplicates: 1}, imported)

	all := decode[SearchResponse](t, resp[3])
	assert.Equal(t, "animals", all.DB)
	assert.Equal(t, []string{"otter", "lynx"}, words(all.Suggestions))
	assert.Equal(t, 90, all.Suggestions[0].Frequency)

	assert.Equal(t, 403, decode[ErrorResponse](t, resp[4]).Code)

	deleted := decode[DatabaseResponse](t, resp[5])
	assert.Equal(t, dictionary.DefaultDatabase, deleted.Active)
	assert.Len(t, deleted.Databases, 1)

	assert.Equal(t, 404, decode[ErrorResponse](t, resp[6]).Code)

	list := decode[DatabaseResponse](t, resp[7])
	require.Len(t, list.Databases, 1)
	assert.True(t, list.Databases[0].Active)
	assert.Equal(t, 16, list.Databases[0].Capacity)
}

func TestPathAndCompare(t *testing.T) {
	grid := []string{"S..", ".#.", "..E"}
	resp := serve(t, dictionary.NewManager(dictionary.WithoutSeed()),
		Request{ID: "p1", Action: "path", Algorithm: "bfs", Grid: grid, Trace: boolPtr(true)},
		Request{ID: "p2", Action: "path", Algorithm: "a*", Grid: grid},
		Request{ID: "p3", Action: "compare", Grid: grid},
		Request{ID: "p4", Action: "path", Algorithm: "greedy", Grid: grid},
		Request{ID: "p5", Action: "path", Grid: []string{"S.", "."}},
	)
	require.Len(t, resp, 5)

	traced := decode[PathResponse](t, resp[0]).Result
	assert.Equal(t, "bfs", traced.Algorithm)
	assert.True(t, traced.Success)
	assert.Equal(t, 4, traced.Length)
	assert.Equal(t, Point{0, 0}, traced.Path[0])
	assert.Equal(t, Point{2, 2}, traced.Path[len(traced.Path)-1])
	require.Len(t, traced.Steps, traced.Explored+2)
	assert.Nil(t, traced.Steps[0].Current)
	assert.Equal(t, traced.Path, traced.Steps[len(traced.Steps)-1].Path)
	assert.NotEmpty(t, traced.Steps[1].Distances)

	plain := decode[PathResponse](t, resp[1]).Result
	assert.Equal(t, "astar", plain.Algorithm)
	assert.Empty(t, plain.Steps)
	assert.NotZero(t, plain.Digest)

	cmp := decode[CompareResponse](t, resp[2])
	require.Len(t, cmp.Results, 4)
	for i, name := range []string{"dijkstra", "astar", "bfs", "dfs"} {
		assert.Equal(t, name, cmp.Results[i].Algorithm)
		assert.Equal(t, 4, cmp.Results[i].Length)
	}

	assert.Equal(t, 400, decode[ErrorResponse](t, resp[3]).Code)
	assert.Equal(t, 400, decode[ErrorResponse](t, resp[4]).Code)
}

func TestConfigReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.DefaultConfig()
	require.NoError(t, config.SaveConfig(cfg, path))

	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	s := NewServer(dictionary.NewManager(dictionary.WithoutSeed()), cfg, path, inR, outW)

	done := make(chan error, 1)
	go func() {
		done <- s.Start(context.Background())
		outW.Close()
	}()

	dec := msgpack.NewDecoder(outR)
	var ready map[string]string
	require.NoError(t, dec.Decode(&ready))

	updated := config.DefaultConfig()
	updated.Server.MaxQueryLen = 3
	require.NoError(t, config.SaveConfig(updated, path))

	require.Eventually(t, func() bool {
		return s.Config().Server.MaxQueryLen == 3
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, msgpack.NewEncoder(inW).Encode(Request{ID: "q1", Action: "search", Query: "abcd"}))
	var e ErrorResponse
	require.NoError(t, dec.Decode(&e))
	assert.Equal(t, 400, e.Code)
	assert.Equal(t, "Query length must be within [1, 3]", e.Error)

	require.NoError(t, inW.Close())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
