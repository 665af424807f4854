/*
Package server implements msgpack IPC over stdin/stdout for the lexicon and
pathfinding engines.

The server announces itself with {"status": "ready"} and then answers one
response per request, in order. Every request carries an id and an action;
the remaining fields depend on the action.

# Lexicon

Prefix and fuzzy search against a database (the active one when db is empty):

	{"id": "q1", "action": "search", "q": "adv"}
	{"id": "q2", "action": "search", "q": "advnture", "mode": "fuzzy", "d": 2}

Responses rank words by position and carry timing in microseconds:

	{"id": "q1", "db": "custom-words", "s": [{"w": "adventure", "f": 850, "r": 1}], "c": 1, "t": 12}

Inserts, bulk imports and point lookups:

	{"id": "i1", "action": "insert", "word": "otter", "f": 40, "cat": "noun"}
	{"id": "i2", "action": "import", "db": "animals", "text": "otter,noun,40,River mammal\nlynx"}
	{"id": "i3", "action": "lookup", "word": "otter"}

Database management uses db_create, db_delete, db_use, db_list and words.

# Pathfinding

A grid is sent as text rows ('.' empty, '#' wall, 'S' start, 'E' end):

	{"id": "p1", "action": "path", "algo": "astar", "grid": ["S..", ".#.", "..E"], "trace": true}
	{"id": "p2", "action": "compare", "grid": ["S..", ".#.", "..E"]}

With trace the full step log is returned. Without it only the summary and
the xxhash digest of the log are sent.

# Errors

Failures are answered with {"id": ..., "e": message, "c": code} using 400
for bad requests, 403 for forbidden operations and 404 for unknown
databases. The stream keeps going after a request error, including a
frame that decodes as msgpack but not as a request. Bytes that are not
msgpack at all get a 400 with an empty id and end serving, since the
frame boundary is lost.
*/
package server

// Request is the envelope of every incoming message.
type Request struct {
	ID          string   `msgpack:"id"`
	Action      string   `msgpack:"action"`
	DB          string   `msgpack:"db,omitempty"`
	Query       string   `msgpack:"q,omitempty"`
	Mode        string   `msgpack:"mode,omitempty"`
	Distance    *int     `msgpack:"d,omitempty"`
	Word        string   `msgpack:"word,omitempty"`
	Frequency   int      `msgpack:"f,omitempty"`
	Category    string   `msgpack:"cat,omitempty"`
	Description string   `msgpack:"desc,omitempty"`
	Text        string   `msgpack:"text,omitempty"`
	Algorithm   string   `msgpack:"algo,omitempty"`
	Grid        []string `msgpack:"grid,omitempty"`
	Trace       *bool    `msgpack:"trace,omitempty"`
}

// Suggestion is a single ranked word.
type Suggestion struct {
	Word      string `msgpack:"w"`
	Frequency int    `msgpack:"f"`
	Rank      uint32 `msgpack:"r"`
	Distance  int    `msgpack:"d,omitempty"`
	Category  string `msgpack:"cat,omitempty"`
}

// SearchResponse answers search and words.
type SearchResponse struct {
	ID          string       `msgpack:"id"`
	DB          string       `msgpack:"db"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"`
}

// StatusResponse answers insert and other acknowledgements.
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// LookupResponse answers a hash table lookup.
type LookupResponse struct {
	ID          string `msgpack:"id"`
	Word        string `msgpack:"word"`
	Found       bool   `msgpack:"found"`
	Frequency   int    `msgpack:"f,omitempty"`
	Category    string `msgpack:"cat,omitempty"`
	Description string `msgpack:"desc,omitempty"`
}

// ImportResponse reports a bulk import.
type ImportResponse struct {
	ID         string `msgpack:"id"`
	Status     string `msgpack:"status"`
	Lines      int    `msgpack:"lines"`
	Inserted   int    `msgpack:"inserted"`
	Skipped    int    `msgpack:"skipped"`
	Duplicates int    `msgpack:"duplicates"`
}

// DatabaseInfo describes one database.
type DatabaseInfo struct {
	Name         string  `msgpack:"name"`
	Description  string  `msgpack:"desc"`
	Created      int64   `msgpack:"created"`
	LastModified int64   `msgpack:"modified"`
	Words        int     `msgpack:"words"`
	MaxDepth     int     `msgpack:"depth"`
	Nodes        int     `msgpack:"nodes"`
	Capacity     int     `msgpack:"capacity"`
	LoadFactor   float64 `msgpack:"load"`
	Collisions   int     `msgpack:"collisions"`
	Active       bool    `msgpack:"active"`
}

// DatabaseResponse answers database management actions.
type DatabaseResponse struct {
	ID        string         `msgpack:"id"`
	Status    string         `msgpack:"status"`
	Active    string         `msgpack:"active"`
	Databases []DatabaseInfo `msgpack:"dbs,omitempty"`
}

// Point is a grid position.
type Point struct {
	Row int `msgpack:"r"`
	Col int `msgpack:"c"`
}

// PathStep is one replay step.
type PathStep struct {
	Description string  `msgpack:"desc"`
	Current     *Point  `msgpack:"cur,omitempty"`
	Visited     []Point `msgpack:"v"`
	Frontier    []Point `msgpack:"fr,omitempty"`
	Path        []Point `msgpack:"p,omitempty"`
	Distances   []int   `msgpack:"dist,omitempty"`
}

// PathResult summarizes one search.
type PathResult struct {
	Algorithm  string     `msgpack:"algo"`
	Success    bool       `msgpack:"ok"`
	Path       []Point    `msgpack:"path"`
	Length     int        `msgpack:"len"`
	Explored   int        `msgpack:"explored"`
	Efficiency float64    `msgpack:"eff"`
	TimeTaken  int64      `msgpack:"t"`
	Digest     uint64     `msgpack:"digest"`
	Steps      []PathStep `msgpack:"steps,omitempty"`
}

// PathResponse answers path.
type PathResponse struct {
	ID     string     `msgpack:"id"`
	Result PathResult `msgpack:"r"`
}

// CompareResponse answers compare with one result per algorithm.
type CompareResponse struct {
	ID      string       `msgpack:"id"`
	Results []PathResult `msgpack:"results"`
}

// ErrorResponse holds basic error information for a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
