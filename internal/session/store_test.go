package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/termlens/internal/summary"
)

func testDoc(text string) *summary.Document {
	return &summary.Document{Summary: text}
}

func TestStore_GetUnknownSource(t *testing.T) {
	s := NewStore(0)
	_, err := s.Get("https://example.com/terms")
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestStore_AppendUnknownSource(t *testing.T) {
	s := NewStore(0)
	err := s.AppendHistory("https://example.com/terms", "q", "a")
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestStore_CreateAndGet(t *testing.T) {
	s := NewStore(0)
	s.CreateOrReplace("id", "corpus text", testDoc("sum"))

	sess, err := s.Get("id")
	require.NoError(t, err)
	assert.Equal(t, "id", sess.Identifier)
	assert.Equal(t, "corpus text", sess.Corpus)
	assert.Equal(t, "sum", sess.Summary.Summary)
	assert.Empty(t, sess.History)
}

func TestStore_HistoryAppendsInOrder(t *testing.T) {
	s := NewStore(0)
	s.CreateOrReplace("id", "corpus", testDoc("sum"))

	require.NoError(t, s.AppendHistory("id", "q1", "a1"))
	sess, err := s.Get("id")
	require.NoError(t, err)
	require.Len(t, sess.History, 1)
	assert.Equal(t, Exchange{Question: "q1", Answer: "a1"}, sess.History[0])

	require.NoError(t, s.AppendHistory("id", "q2", "a2"))
	sess, err = s.Get("id")
	require.NoError(t, err)
	require.Len(t, sess.History, 2)
	assert.Equal(t, Exchange{Question: "q1", Answer: "a1"}, sess.History[0])
	assert.Equal(t, Exchange{Question: "q2", Answer: "a2"}, sess.History[1])
}

func TestStore_ReplaceDiscardsHistory(t *testing.T) {
	s := NewStore(0)
	s.CreateOrReplace("id", "corpus v1", testDoc("v1"))
	require.NoError(t, s.AppendHistory("id", "q1", "a1"))

	s.CreateOrReplace("id", "corpus v2", testDoc("v2"))

	sess, err := s.Get("id")
	require.NoError(t, err)
	assert.Equal(t, "corpus v2", sess.Corpus)
	assert.Equal(t, "v2", sess.Summary.Summary)
	assert.Empty(t, sess.History, "re-summarize must reset conversation context")
}

func TestStore_SnapshotIsolation(t *testing.T) {
	s := NewStore(0)
	s.CreateOrReplace("id", "corpus", testDoc("sum"))
	require.NoError(t, s.AppendHistory("id", "q1", "a1"))

	sess, err := s.Get("id")
	require.NoError(t, err)
	sess.History[0].Answer = "mutated"

	fresh, err := s.Get("id")
	require.NoError(t, err)
	assert.Equal(t, "a1", fresh.History[0].Answer)
}

func TestStore_ConcurrentAppendsLoseNothing(t *testing.T) {
	s := NewStore(0)
	s.CreateOrReplace("id", "corpus", testDoc("sum"))

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.AppendHistory("id", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
		}(i)
	}
	wg.Wait()

	sess, err := s.Get("id")
	require.NoError(t, err)
	assert.Len(t, sess.History, n)
}

func TestStore_IndependentIdentifiers(t *testing.T) {
	s := NewStore(0)
	s.CreateOrReplace("a", "corpus a", testDoc("a"))
	s.CreateOrReplace("b", "corpus b", testDoc("b"))
	require.NoError(t, s.AppendHistory("a", "q", "ans"))

	sessB, err := s.Get("b")
	require.NoError(t, err)
	assert.Empty(t, sessB.History)
}

func TestStore_Identifiers(t *testing.T) {
	s := NewStore(0)
	s.CreateOrReplace("a", "corpus", testDoc("a"))
	s.CreateOrReplace("b", "corpus", testDoc("b"))
	require.NoError(t, s.AppendHistory("b", "q", "ans"))

	ids := s.Identifiers()
	assert.Equal(t, map[string]int{"a": 0, "b": 1}, ids)
}

func TestStore_TTLEviction(t *testing.T) {
	s := NewStore(20 * time.Millisecond)
	s.CreateOrReplace("id", "corpus", testDoc("sum"))

	_, err := s.Get("id")
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)
	_, err = s.Get("id")
	assert.ErrorIs(t, err, ErrUnknownSource)
}
