package blast

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blast/internal/core"
)

// randomBoard fills roughly density of the cells with a fixed seed.
func randomBoard(size int, density float64, seed int64) *Board {
	rng := rand.New(rand.NewSource(seed))
	b := NewBoard(size)
	for i := range b.Len() {
		if rng.Float64() < density {
			b.Occupy(i, core.ColorGray)
		}
	}
	return b
}

func TestFootprintAnchorsTopLeftOccupiedCell(t *testing.T) {
	b := NewBoard(10)

	tests := []struct {
		name     string
		shape    Shape
		anchor   int
		expected []int
	}{
		{"line", MustParseShape("Line", "###"), 0, []int{0, 1, 2}},
		{"vertical", MustParseShape("V", "#", "#", "#"), 45, []int{45, 55, 65}},
		{"T", MustParseShape("T", "###", ".#."), 11, []int{11, 12, 13, 22}},
		// The S frame's (0,0) is empty: the anchor cell itself stays free.
		{"S", MustParseShape("S", ".##", "##."), 11, []int{12, 13, 21, 22}},
		{"shifted frame", MustParseShape("corner", "...", ".##", ".#."), 0, []int{0, 1, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells, ok := Footprint(b, tt.shape, tt.anchor)
			require.True(t, ok)
			assert.Equal(t, tt.expected, cells)
		})
	}
}

func TestPlacementBoundaryRejected(t *testing.T) {
	b := NewBoard(10)
	line := MustParseShape("Line", "###")
	vertical := MustParseShape("V", "#", "#", "#")

	tests := []struct {
		name   string
		shape  Shape
		anchor int
		ok     bool
	}{
		{"line at last column", line, 9, false},
		{"line two from edge", line, 8, false},
		{"line fits flush right", line, 7, true},
		{"line wraps into next row", line, 19, false},
		{"vertical at bottom row", vertical, 95, false},
		{"vertical fits flush bottom", vertical, 75, true},
		{"anchor off the grid", line, 100, false},
		{"negative anchor", line, -1, false},
		{"empty shape", Shape{Name: "none"}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := b.Clone()
			assert.Equal(t, tt.ok, CanPlace(b, tt.shape, tt.anchor))

			_, committed := Commit(b, tt.shape, tt.anchor, core.ColorRed)
			assert.Equal(t, tt.ok, committed)
			if !committed {
				assert.True(t, before.Equal(b), "rejected commit must not mutate the board")
			}
			b.Reset()
		})
	}
}

func TestPlacementCollisionRejected(t *testing.T) {
	b := NewBoard(10)
	b.Occupy(22, core.ColorBlue)
	before := b.Clone()

	tee := MustParseShape("T", "###", ".#.")

	// T anchored at 11 needs 11, 12, 13 and 22.
	assert.False(t, CanPlace(b, tee, 11))
	cells, ok := Commit(b, tee, 11, core.ColorRed)
	assert.False(t, ok)
	assert.Nil(t, cells)
	assert.True(t, before.Equal(b))

	// Partial overlap on the last sub-cell must still leave the first three empty.
	for _, idx := range []int{11, 12, 13} {
		occupied, _ := b.IsOccupied(idx)
		assert.False(t, occupied, "cell %d", idx)
	}
}

func TestCommitFillsWithColor(t *testing.T) {
	b := NewBoard(10)
	square := MustParseShape("Square", "##", "##")

	cells, ok := Commit(b, square, 44, core.ColorOrange)
	require.True(t, ok)
	assert.Equal(t, []int{44, 45, 54, 55}, cells)

	for _, idx := range cells {
		c, err := b.Cell(idx)
		require.NoError(t, err)
		assert.Equal(t, Cell{Filled: true, Color: core.ColorOrange}, c)
	}
	assert.Equal(t, 4, b.FilledCount())

	// Same spot again collides.
	_, ok = Commit(b, square, 44, core.ColorOrange)
	assert.False(t, ok)
}

func TestCommitIffCheckOnly(t *testing.T) {
	catalog := append(DefaultCatalog(), MustParseShape("Dot", "#"))

	for seed := int64(1); seed <= 5; seed++ {
		base := randomBoard(10, 0.45, seed)

		for _, s := range catalog {
			for anchor := range base.Len() {
				check := CanPlace(base, s, anchor)

				work := base.Clone()
				cells, committed := Commit(work, s, anchor, core.ColorRed)

				require.Equal(t, check, committed, "seed %d shape %s anchor %d", seed, s.Name, anchor)
				if committed {
					assert.Equal(t, base.FilledCount()+s.Area(), work.FilledCount())
					assert.Len(t, cells, s.Area())
				} else {
					assert.True(t, base.Equal(work), "seed %d shape %s anchor %d mutated", seed, s.Name, anchor)
				}
			}
		}
	}
}
