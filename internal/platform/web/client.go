package web

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blast/internal/blast"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

// Operations accepted in Request.Op.
const (
	OpPlace   = "place"
	OpUndo    = "undo"
	OpRestart = "restart"
	OpState   = "state"
)

// Request is a client operation. A place names either a hand slot or a
// catalog shape, plus the anchor cell.
type Request struct {
	Op    string `json:"op"`
	Slot  *int   `json:"slot,omitempty"`
	Shape string `json:"shape,omitempty"`
	Cell  int    `json:"cell"`
}

// Response is sent after the connection opens and after every request.
type Response struct {
	Type   string         `json:"type"`
	State  blast.Snapshot `json:"state"`
	Events []EventView    `json:"events"`
	OK     bool           `json:"ok"`
	Error  string         `json:"error,omitempty"`
}

// EventView is the wire form of a blast.Event.
type EventView struct {
	Type  string `json:"type"`
	Rows  []int  `json:"rows,omitempty"`
	Cols  []int  `json:"cols,omitempty"`
	Cells []int  `json:"cells,omitempty"`
	Score int    `json:"score,omitempty"` // Set on score_changed and game_over
	Delta int    `json:"delta,omitempty"`
}

var (
	errUnknownShape  = errors.New("web: unknown shape")
	errShapeNotDealt = errors.New("web: shape not dealt")
)

// client adapts one session to the request/response protocol.
type client struct {
	session *blast.Session
	gameID  string
	store   *storage.Store
	logger  *log.Logger
	pending []EventView
	saved   bool // Result stored for the current game over
}

func newClient(session *blast.Session, gameID string, store *storage.Store, logger *log.Logger) *client {
	c := &client{
		session: session,
		gameID:  gameID,
		store:   store,
		logger:  logger,
	}
	session.Subscribe(c.onEvent)
	return c
}

func (c *client) onEvent(e blast.Event) {
	switch e := e.(type) {
	case blast.LinesClearedEvent:
		c.pending = append(c.pending, EventView{
			Type:  "lines_cleared",
			Rows:  e.Rows,
			Cols:  e.Cols,
			Cells: e.Cells,
			Delta: e.Delta,
		})
	case blast.ScoreChangedEvent:
		c.pending = append(c.pending, EventView{Type: "score_changed", Score: e.Score, Delta: e.Delta})
	case blast.DealtEvent:
		c.pending = append(c.pending, EventView{Type: "dealt"})
	case blast.GameOverEvent:
		c.pending = append(c.pending, EventView{Type: "game_over", Score: e.Score})
		c.saveResult()
	}
}

// handle applies req and reports the resulting state.
func (c *client) handle(req Request) Response {
	switch req.Op {
	case OpPlace:
		ok, err := c.place(req)
		return c.response(ok, err)
	case OpUndo:
		return c.response(c.session.Undo(), nil)
	case OpRestart:
		c.session.Restart()
		c.saved = false
		return c.response(true, nil)
	case OpState:
		return c.response(true, nil)
	}
	return c.response(false, fmt.Errorf("web: unknown op %q", req.Op))
}

func (c *client) place(req Request) (bool, error) {
	if req.Shape == "" {
		slot := 0
		if req.Slot != nil {
			slot = *req.Slot
		}
		return c.session.PlaceSlot(slot, req.Cell)
	}

	if _, ok := c.session.Catalog().Lookup(req.Shape); !ok {
		return false, fmt.Errorf("%w %q", errUnknownShape, req.Shape)
	}
	// A named shape must be in the hand; the first matching slot is used.
	for slot, p := range c.session.Hand() {
		if p.Shape.Name == req.Shape {
			return c.session.PlaceSlot(slot, req.Cell)
		}
	}
	return false, fmt.Errorf("%w %q", errShapeNotDealt, req.Shape)
}

// response drains the pending events into a state message.
func (c *client) response(ok bool, err error) Response {
	resp := Response{
		Type:   "state",
		State:  c.session.Snapshot(),
		Events: c.pending,
		OK:     ok && err == nil,
	}
	if resp.Events == nil {
		resp.Events = []EventView{}
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.pending = nil
	return resp
}

func (c *client) saveResult() {
	if c.store == nil || c.saved {
		return
	}
	c.saved = true
	_, err := c.store.SaveResult(storage.Result{
		GameID: c.gameID,
		Score:  c.session.Score(),
		Lines:  c.session.Lines(),
		Moves:  c.session.Moves(),
	})
	if err != nil {
		c.logger.Warn("could not save score", "game", c.gameID, "error", err)
	}
}
