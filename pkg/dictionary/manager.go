/*
Package dictionary owns named word databases and the bulk import path that
fills them.

A Manager always holds the reserved database "custom-words", seeded with a
small curated word set, and tracks which database is active. Every database
keeps its words in a lexicon.Trie and a lexicon.HashTable side by side and
memoizes prefix queries in a lexicon.QueryCache.

	m := dictionary.NewManager()
	m.CreateDatabase("animals", "Animal names")
	m.InsertData("animals", "otter", dictionary.Entry{Frequency: 40, Category: "noun"})
	results := m.SearchExact("animals", "ot")
*/
package dictionary

import (
	"bytes"
	_ "embed"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bastiangx/algocore/pkg/lexicon"
	"github.com/charmbracelet/log"
)

const (
	// DefaultDatabase always exists and cannot be deleted.
	DefaultDatabase = "custom-words"

	defaultDescription = "Custom Test Words"
)

//go:embed seed/custom_words.csv
var seedWords []byte

// Manager maps names to databases and tracks the active one.
type Manager struct {
	databases map[string]*Database
	active    string
	now       func() time.Time
	cacheSize int
	seed      bool
	mu        sync.RWMutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the time source for database and metadata timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithCacheSize bounds each database's prefix query cache.
func WithCacheSize(n int) Option {
	return func(m *Manager) { m.cacheSize = n }
}

// WithoutSeed leaves the default database empty.
func WithoutSeed() Option {
	return func(m *Manager) { m.seed = false }
}

// NewManager creates the default database, seeds it unless WithoutSeed is
// given, and makes it active.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		databases: make(map[string]*Database),
		now:       time.Now,
		cacheSize: lexicon.DefaultCacheSize,
		seed:      true,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.CreateDatabase(DefaultDatabase, defaultDescription)
	if m.seed {
		report, err := m.Import(DefaultDatabase, bytes.NewReader(seedWords))
		if err != nil {
			log.Errorf("Failed to seed %s: %v", DefaultDatabase, err)
		} else {
			log.Debugf("Seeded %s with %d words", DefaultDatabase, report.Inserted)
		}
	}
	m.active = DefaultDatabase
	return m
}

// CreateDatabase installs a new empty database, replacing any database of the
// same name. Recreating is how a database is cleared. An empty name is
// rejected with nil.
func (m *Manager) CreateDatabase(name, description string) *Database {
	if name == "" {
		log.Warn("Refusing to create a database without a name")
		return nil
	}

	db := newDatabase(name, description, m.now, m.cacheSize)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.databases[name]; exists {
		log.Debugf("Replacing database '%s'", name)
	}
	m.databases[name] = db
	return db
}

// DeleteDatabase removes name. The default database is never removed.
// Deleting the active database makes the default active again.
func (m *Manager) DeleteDatabase(name string) bool {
	if name == DefaultDatabase {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.databases[name]; !ok {
		return false
	}
	delete(m.databases, name)
	if m.active == name {
		m.active = DefaultDatabase
	}
	return true
}

// SetActive switches the active database if name exists.
func (m *Manager) SetActive(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.databases[name]; !ok {
		return false
	}
	m.active = name
	return true
}

// ActiveName returns the name of the active database.
func (m *Manager) ActiveName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Active returns the active database.
func (m *Manager) Active() *Database {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.databases[m.active]
}

// Get returns the database called name.
func (m *Manager) Get(name string) (*Database, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	db, ok := m.databases[name]
	return db, ok
}

// Names lists database names alphabetically.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.databases))
	for name := range m.databases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Databases returns Info for every database, sorted by name.
func (m *Manager) Databases() []Info {
	names := m.Names()
	infos := make([]Info, 0, len(names))
	for _, name := range names {
		if db, ok := m.Get(name); ok {
			infos = append(infos, db.Info())
		}
	}
	return infos
}

// InsertData adds key to dbName. It reports false when the database does not
// exist or the key is empty after trimming.
func (m *Manager) InsertData(dbName, key string, e Entry) bool {
	db, ok := m.Get(dbName)
	if !ok {
		log.Debugf("Insert into unknown database '%s'", dbName)
		return false
	}
	key = normalizeKey(key)
	if key == "" {
		return false
	}
	return db.insert(key, e)
}

// AllWords returns every positive frequency word in dbName, or an empty
// slice when the database does not exist.
func (m *Manager) AllWords(dbName string) []lexicon.Result {
	db, ok := m.Get(dbName)
	if !ok {
		return []lexicon.Result{}
	}
	return db.AllWords()
}

// SearchExact runs a prefix query against dbName.
func (m *Manager) SearchExact(dbName, prefix string) []lexicon.Result {
	db, ok := m.Get(dbName)
	if !ok {
		return []lexicon.Result{}
	}
	return db.SearchExact(prefix)
}

// SearchFuzzy runs an edit distance query against dbName.
func (m *Manager) SearchFuzzy(dbName, query string, maxDistance int) []lexicon.FuzzyResult {
	db, ok := m.Get(dbName)
	if !ok {
		return []lexicon.FuzzyResult{}
	}
	return db.SearchFuzzy(query, maxDistance)
}

// Lookup is a hash table point lookup in dbName.
func (m *Manager) Lookup(dbName, key string) (Entry, int, bool) {
	db, ok := m.Get(dbName)
	if !ok {
		return Entry{}, 0, false
	}
	return db.Lookup(key)
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
