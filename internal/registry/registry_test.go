package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-blast/internal/core"
)

type stubGame struct {
	id, title, desc string
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

type describedGame struct{ stubGame }

func (g *describedGame) Description() string { return g.desc }

func TestRegisterListCreate(t *testing.T) {
	Register("zz_test_b", func() Game { return &stubGame{id: "zz_test_b", title: "B"} })
	Register("zz_test_a", func() Game {
		return &describedGame{stubGame{id: "zz_test_a", title: "A", desc: "first"}}
	})

	var ids []string
	var a GameInfo
	for _, info := range List() {
		if strings.HasPrefix(info.ID, "zz_test_") {
			ids = append(ids, info.ID)
		}
		if info.ID == "zz_test_a" {
			a = info
		}
	}
	if len(ids) != 2 || ids[0] != "zz_test_a" || ids[1] != "zz_test_b" {
		t.Errorf("List order = %v", ids)
	}
	if a.Title != "A" || a.Description != "first" {
		t.Errorf("info = %+v", a)
	}

	g, err := Create("zz_test_b")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "zz_test_b" {
		t.Errorf("ID = %q", g.ID())
	}
	if !Exists("zz_test_a") || Exists("zz_test_missing") {
		t.Error("Exists mismatch")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("zz_unknown"); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_test_dup", func() Game { return &stubGame{id: "zz_test_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("zz_test_dup", func() Game { return &stubGame{id: "zz_test_dup"} })
}
