package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blast/internal/blast"
	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

func newTestServer(t *testing.T, store *storage.Store) *httptest.Server {
	t.Helper()
	srv, err := NewServer(Config{
		Seed:   42,
		Game:   config.DefaultBlockBlastConfig(),
		Store:  store,
		Logger: log.New(io.Discard),
	})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req Request) Response {
	t.Helper()
	require.NoError(t, conn.WriteJSON(req))
	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	return resp
}

func intPtr(v int) *int { return &v }

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestInitialState(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts, "")

	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))

	assert.Equal(t, "state", resp.Type)
	assert.True(t, resp.OK)
	assert.Equal(t, blast.DefaultGridSize, resp.State.GridSize)
	assert.Len(t, resp.State.Cells, blast.DefaultGridSize*blast.DefaultGridSize)
	assert.Len(t, resp.State.Hand, blast.HandSize)
	assert.Zero(t, resp.State.Score)
	assert.False(t, resp.State.GameOver)
	assert.Empty(t, resp.Events)
}

func TestMiniMode(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts, "?mode=mini")

	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, config.DefaultBlockBlastConfig().Board.MiniGridSize, resp.State.GridSize)
}

func TestPlaceSlotAndUndo(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts, "")

	var initial Response
	require.NoError(t, conn.ReadJSON(&initial))

	// Every catalog shape fits at the top-left corner of an empty board.
	resp := roundTrip(t, conn, Request{Op: OpPlace, Slot: intPtr(0), Cell: 0})
	require.True(t, resp.OK, resp.Error)
	assert.Equal(t, 1, resp.State.Moves)
	assert.True(t, resp.State.CanUndo)
	require.NotEmpty(t, resp.Events)
	assert.Equal(t, "dealt", resp.Events[len(resp.Events)-1].Type)

	filled := 0
	for _, c := range resp.State.Cells {
		if c.Filled {
			filled++
		}
	}
	assert.Positive(t, filled)

	resp = roundTrip(t, conn, Request{Op: OpUndo})
	require.True(t, resp.OK)
	assert.False(t, resp.State.CanUndo)
	for i, c := range resp.State.Cells {
		assert.False(t, c.Filled, "cell %d still filled after undo", i)
	}

	resp = roundTrip(t, conn, Request{Op: OpUndo})
	assert.False(t, resp.OK, "second undo has nothing to revert")
}

func TestPlaceNamedShape(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts, "")

	var initial Response
	require.NoError(t, conn.ReadJSON(&initial))
	dealt := initial.State.Hand[0]

	// Every catalog shape fits at the top-left corner of an empty board.
	resp := roundTrip(t, conn, Request{Op: OpPlace, Shape: dealt.Shape, Cell: 0})
	require.True(t, resp.OK, resp.Error)
	assert.Equal(t, 1, resp.State.Moves)
	assert.True(t, resp.State.Cells[0].Filled || resp.State.Cells[1].Filled)

	resp = roundTrip(t, conn, Request{Op: OpPlace, Shape: "Hexomino", Cell: 55})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "unknown shape")
}

func TestPlaceUndealtShapeRejected(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts, "")

	var initial Response
	require.NoError(t, conn.ReadJSON(&initial))

	inHand := make(map[string]bool, len(initial.State.Hand))
	for _, p := range initial.State.Hand {
		inHand[p.Shape] = true
	}
	var undealt string
	for _, shape := range blast.DefaultCatalog() {
		if !inHand[shape.Name] {
			undealt = shape.Name
			break
		}
	}
	require.NotEmpty(t, undealt, "a three-piece hand cannot hold all eight shapes")

	resp := roundTrip(t, conn, Request{Op: OpPlace, Shape: undealt, Cell: 55})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "not dealt")
	assert.Zero(t, resp.State.Moves)
	for i, c := range resp.State.Cells {
		assert.False(t, c.Filled, "cell %d filled by an undealt shape", i)
	}
	assert.Equal(t, initial.State.Hand, resp.State.Hand, "a rejected placement keeps the hand")
}

func TestPlaceErrors(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts, "")

	var initial Response
	require.NoError(t, conn.ReadJSON(&initial))

	resp := roundTrip(t, conn, Request{Op: OpPlace, Slot: intPtr(0), Cell: 100})
	assert.False(t, resp.OK)
	assert.NotEmpty(t, resp.Error)

	resp = roundTrip(t, conn, Request{Op: OpPlace, Slot: intPtr(7), Cell: 0})
	assert.False(t, resp.OK)
	assert.NotEmpty(t, resp.Error)

	resp = roundTrip(t, conn, Request{Op: "jump"})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "unknown op")
	assert.Zero(t, resp.State.Moves)
}

func TestRestart(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts, "")

	var initial Response
	require.NoError(t, conn.ReadJSON(&initial))

	resp := roundTrip(t, conn, Request{Op: OpPlace, Slot: intPtr(0), Cell: 0})
	require.True(t, resp.OK)

	resp = roundTrip(t, conn, Request{Op: OpRestart})
	require.True(t, resp.OK)
	assert.Zero(t, resp.State.Moves)
	assert.False(t, resp.State.CanUndo)
	require.NotEmpty(t, resp.Events)
	assert.Equal(t, "dealt", resp.Events[len(resp.Events)-1].Type)

	resp = roundTrip(t, conn, Request{Op: OpState})
	assert.True(t, resp.OK)
	assert.Empty(t, resp.Events)
}

func TestConnectionsGetDistinctSeeds(t *testing.T) {
	ts := newTestServer(t, nil)

	hands := make([][]blast.PieceView, 0, 4)
	for range 4 {
		conn := dial(t, ts, "")
		var resp Response
		require.NoError(t, conn.ReadJSON(&resp))
		hands = append(hands, resp.State.Hand)
	}

	same := true
	for _, h := range hands[1:] {
		if !assert.ObjectsAreEqual(hands[0], h) {
			same = false
		}
	}
	assert.False(t, same, "four connections dealt identical hands")
}

func TestSaveResultOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	session, err := blast.NewSession(blast.Options{Seed: 1})
	require.NoError(t, err)

	c := newClient(session, "blockblast", store, log.New(io.Discard))
	c.onEvent(blast.GameOverEvent{Score: 0})
	c.onEvent(blast.GameOverEvent{Score: 0})

	scores, err := store.TopScores("blockblast", 10)
	require.NoError(t, err)
	assert.Len(t, scores, 1)

	resp := c.handle(Request{Op: OpRestart})
	require.True(t, resp.OK)
	assert.False(t, c.saved)
}
