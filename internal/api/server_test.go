package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/termlens/internal/analyzer"
	"github.com/sells-group/termlens/internal/session"
)

const validSummaryJSON = `{"summary":"ok","userTypes":[],"importantNotices":[]}`

type stubFetcher struct {
	html string
	err  error
}

func (s *stubFetcher) Fetch(context.Context, string) (string, error) {
	return s.html, s.err
}

type stubCompleter struct {
	out string
	err error
}

func (s *stubCompleter) Complete(context.Context, string) (string, error) {
	return s.out, s.err
}

func newTestServer(fetcher *stubFetcher, completer *stubCompleter) *Server {
	a := analyzer.New(fetcher, completer, session.NewStore(0))
	return NewServer(a, nil)
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(&stubFetcher{}, &stubCompleter{})
	rec := doJSON(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_AnalyzeOK(t *testing.T) {
	srv := newTestServer(
		&stubFetcher{html: "<html><body><p>Privacy terms apply.</p></body></html>"},
		&stubCompleter{out: validSummaryJSON},
	)

	rec := doJSON(t, srv, http.MethodPost, "/analyze", `{"url":"https://ex.com/terms"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Summary string `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "ok", doc.Summary)
}

func TestServer_AnalyzeMissingURL(t *testing.T) {
	srv := newTestServer(&stubFetcher{}, &stubCompleter{})
	rec := doJSON(t, srv, http.MethodPost, "/analyze", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing_input")
}

func TestServer_AnalyzeBadBody(t *testing.T) {
	srv := newTestServer(&stubFetcher{}, &stubCompleter{})
	rec := doJSON(t, srv, http.MethodPost, "/analyze", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_AnalyzeFetchFailure(t *testing.T) {
	srv := newTestServer(&stubFetcher{err: eris.New("origin down")}, &stubCompleter{})
	rec := doJSON(t, srv, http.MethodPost, "/analyze", `{"url":"https://down.example"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "fetch_failed")
}

func TestServer_AnalyzeMalformedModelOutput(t *testing.T) {
	srv := newTestServer(
		&stubFetcher{html: "<html><body><p>Privacy terms.</p></body></html>"},
		&stubCompleter{out: "not json at all"},
	)
	rec := doJSON(t, srv, http.MethodPost, "/analyze", `{"url":"https://ex.com"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "malformed_summary")
}

func TestServer_AskUnknownSource(t *testing.T) {
	srv := newTestServer(&stubFetcher{}, &stubCompleter{})
	rec := doJSON(t, srv, http.MethodPost, "/ask", `{"url":"https://never.example","question":"q"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown_source")
}

func TestServer_AskMissingFields(t *testing.T) {
	srv := newTestServer(&stubFetcher{}, &stubCompleter{})
	rec := doJSON(t, srv, http.MethodPost, "/ask", `{"url":"https://ex.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_AnalyzeThenAsk(t *testing.T) {
	fetcher := &stubFetcher{html: "<html><body><p>Privacy terms apply.</p></body></html>"}
	completer := &stubCompleter{out: validSummaryJSON}
	srv := newTestServer(fetcher, completer)

	rec := doJSON(t, srv, http.MethodPost, "/analyze", `{"url":"https://ex.com/terms"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	completer.out = "It means your data may be shared."
	rec = doJSON(t, srv, http.MethodPost, "/ask", `{"url":"https://ex.com/terms","question":"What about my data?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"answer":"It means your data may be shared."}`, rec.Body.String())

	// The session is now listed with one exchange.
	rec = doJSON(t, srv, http.MethodGet, "/sessions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Sessions []struct {
			Identifier string `json:"identifier"`
			Questions  int    `json:"questions"`
		} `json:"sessions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Len(t, listing.Sessions, 1)
	assert.Equal(t, "https://ex.com/terms", listing.Sessions[0].Identifier)
	assert.Equal(t, 1, listing.Sessions[0].Questions)
}
