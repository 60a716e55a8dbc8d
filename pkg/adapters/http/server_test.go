package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/infobot"
	"github.com/aretw0/infobot/pkg/catalog"
	"github.com/aretw0/infobot/pkg/domain"
	"github.com/aretw0/infobot/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBot(t *testing.T, opts ...infobot.Option) *infobot.Bot {
	t.Helper()
	store, err := catalog.New([]domain.Record{
		{Name: "Alpha College", Location: "Boston, MA", TuitionFee: 30000, PlacementStatistics: "90% placed"},
		{Name: "Beta College", Location: "Boston, MA", TuitionFee: 20000, PlacementStatistics: "80% placed"},
		{Name: "Gamma Institute", Location: "Denver, CO", TuitionFee: 25000},
	})
	require.NoError(t, err)
	bot, err := infobot.New(store, opts...)
	require.NoError(t, err)
	return bot
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSessionLifecycle(t *testing.T) {
	h := NewHandler(newTestBot(t))

	rec := do(t, h, http.MethodPost, "/sessions", StartRequest{SessionID: "s1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var session domain.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, "s1", session.ID)
	assert.Equal(t, domain.ModeNormal, session.PendingMode)

	rec = do(t, h, http.MethodPost, "/sessions/s1/turns", TurnRequest{Utterance: "alpha"})
	require.Equal(t, http.StatusOK, rec.Code)
	var turn TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &turn))
	assert.Equal(t, domain.IntentIdentify, turn.Intent)
	assert.Equal(t, "Alpha College", turn.FocusedEntity)

	rec = do(t, h, http.MethodGet, "/sessions/s1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Len(t, session.Transcript, 1)

	rec = do(t, h, http.MethodGet, "/sessions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"s1"`)

	rec = do(t, h, http.MethodDelete, "/sessions/s1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/sessions/s1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStartSession_RandomID(t *testing.T) {
	h := NewHandler(newTestBot(t))

	req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var session domain.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.NotEmpty(t, session.ID)
}

func TestPostTurn_ListFlow(t *testing.T) {
	h := NewHandler(newTestBot(t))

	rec := do(t, h, http.MethodPost, "/sessions/s2/turns", TurnRequest{Utterance: "list colleges"})
	var turn TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &turn))
	assert.Equal(t, domain.ModeAwaitingLocation, turn.PendingMode)

	rec = do(t, h, http.MethodPost, "/sessions/s2/turns", TurnRequest{Utterance: "Boston"})
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &turn))
	assert.Equal(t, "Colleges in Boston: Alpha College, Beta College.", turn.Response)
	assert.Equal(t, domain.ModeNormal, turn.PendingMode)
}

func TestPostTurn_RejectsBadInput(t *testing.T) {
	h := NewHandler(newTestBot(t))

	rec := do(t, h, http.MethodPost, "/sessions/s3/turns", TurnRequest{Utterance: strings.Repeat("a", 5000)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/sessions/s3/turns", strings.NewReader("{not json"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "invalid request body")
}

func TestColleges(t *testing.T) {
	h := NewHandler(newTestBot(t))

	rec := do(t, h, http.MethodGet, "/colleges", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Colleges []domain.Record `json:"colleges"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Colleges, 3)

	rec = do(t, h, http.MethodGet, "/colleges?location=denver", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Colleges, 1)
	assert.Equal(t, "Gamma Institute", list.Colleges[0].Name)

	rec = do(t, h, http.MethodGet, "/colleges?location=Paris", nil)
	assert.JSONEq(t, `{"colleges":[]}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/colleges/beta", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var college CollegeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &college))
	assert.Equal(t, "Beta College", college.Record.Name)
	assert.Contains(t, college.Description, "located in Boston, MA")

	rec = do(t, h, http.MethodGet, "/colleges/zeta", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompare(t *testing.T) {
	h := NewHandler(newTestBot(t))

	rec := do(t, h, http.MethodGet, "/compare?a=Alpha&b=Beta", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Beta College is the better choice due to lower fees.")

	rec = do(t, h, http.MethodGet, "/compare?a=Alpha", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthInfoAndMetrics(t *testing.T) {
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	bot := newTestBot(t, infobot.WithLifecycleHooks(metrics.Hooks()))
	h := NewHandler(bot, WithMetricsHandler(metrics.Handler()))

	rec := do(t, h, http.MethodGet, "/health", nil)
	assert.JSONEq(t, `{"status":"ok","records":3}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/info", nil)
	assert.Contains(t, rec.Body.String(), `"app":"infobot-http"`)

	do(t, h, http.MethodPost, "/sessions/m/turns", TurnRequest{Utterance: "hello"})
	rec = do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `infobot_turns_total{intent="greeting"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	h := NewHandler(newTestBot(t))
	rec := do(t, h, http.MethodOptions, "/sessions/x/turns", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents_Session(t *testing.T) {
	h := NewHandler(newTestBot(t))
	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/sessions/live/events?watch=focus", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: ping\n", line)

	// A greeting changes no focus and must be filtered out by watch=focus.
	for _, utterance := range []string{"hi", "gamma"} {
		body, _ := json.Marshal(TurnRequest{Utterance: utterance})
		post, err := http.Post(srv.URL+"/sessions/live/turns", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		post.Body.Close()
	}

	var data string
	for data == "" {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: {") {
			data = strings.TrimPrefix(strings.TrimSpace(line), "data: ")
		}
	}

	var diff domain.SessionDiff
	require.NoError(t, json.Unmarshal([]byte(data), &diff))
	require.NotNil(t, diff.FocusedEntity)
	assert.Equal(t, "Gamma Institute", *diff.FocusedEntity)
	assert.Equal(t, "live", diff.SessionID)
}

func TestStreamManager(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe("s")
	assert.Equal(t, 1, sm.Subscribers("s"))

	sm.Broadcast("s", "one")
	sm.Broadcast("other", "ignored")
	assert.Equal(t, "one", <-ch)

	cancel()
	cancel()
	assert.Equal(t, 0, sm.Subscribers("s"))
	_, open := <-ch
	assert.False(t, open)
}
