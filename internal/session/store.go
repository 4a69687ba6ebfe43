// Package session holds per-source conversation state. A session exists iff
// summarization for its identifier has succeeded at least once; asking a
// question is only valid against an existing session.
package session

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"

	"github.com/sells-group/termlens/internal/summary"
)

// ErrUnknownSource is returned when no session exists for an identifier.
var ErrUnknownSource = eris.New("unknown source: no summary exists for this identifier")

// Exchange is one question/answer pair in a session's history.
type Exchange struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Session is a snapshot of one source's state: the extracted corpus, the
// last parsed summary, and the append-only conversation history.
type Session struct {
	Identifier string
	Corpus     string
	Summary    *summary.Document
	History    []Exchange
}

// entry is the live, mutable record behind a session. Its mutex serializes
// history appends per identifier.
type entry struct {
	mu      sync.Mutex
	corpus  string
	summary *summary.Document
	history []Exchange
}

// Store maps source identifiers to sessions. State is in-memory only and is
// lost on process teardown; that is the contract, not an accident.
type Store struct {
	cache *gocache.Cache
}

// NewStore creates a Store. ttl is the optional eviction policy: zero keeps
// sessions forever (the default contract), a positive value expires idle
// sessions, bounding memory for long-lived processes.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		return &Store{cache: gocache.New(gocache.NoExpiration, 0)}
	}
	return &Store{cache: gocache.New(ttl, ttl/2)}
}

// CreateOrReplace installs a fresh session for identifier, discarding any
// prior session including its history. Re-summarizing a source resets its
// conversation context.
func (s *Store) CreateOrReplace(identifier, corpus string, doc *summary.Document) {
	s.cache.Set(identifier, &entry{
		corpus:  corpus,
		summary: doc,
		history: nil,
	}, gocache.DefaultExpiration)
}

// Get returns a snapshot of the session for identifier, or ErrUnknownSource.
// The snapshot's history is a copy; mutating it does not affect the store.
func (s *Store) Get(identifier string) (*Session, error) {
	e, ok := s.lookup(identifier)
	if !ok {
		return nil, ErrUnknownSource
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	hist := make([]Exchange, len(e.history))
	copy(hist, e.history)
	return &Session{
		Identifier: identifier,
		Corpus:     e.corpus,
		Summary:    e.summary,
		History:    hist,
	}, nil
}

// AppendHistory appends one exchange to the session's history. Returns
// ErrUnknownSource if the session vanished between lookup and append.
func (s *Store) AppendHistory(identifier, question, answer string) error {
	e, ok := s.lookup(identifier)
	if !ok {
		return ErrUnknownSource
	}

	e.mu.Lock()
	e.history = append(e.history, Exchange{Question: question, Answer: answer})
	e.mu.Unlock()
	return nil
}

// Identifiers returns the identifiers of all live sessions with their
// history lengths. Order is unspecified.
func (s *Store) Identifiers() map[string]int {
	out := make(map[string]int)
	for id, item := range s.cache.Items() {
		e, ok := item.Object.(*entry)
		if !ok {
			continue
		}
		e.mu.Lock()
		out[id] = len(e.history)
		e.mu.Unlock()
	}
	return out
}

func (s *Store) lookup(identifier string) (*entry, bool) {
	v, ok := s.cache.Get(identifier)
	if !ok {
		return nil, false
	}
	e, ok := v.(*entry)
	return e, ok
}
