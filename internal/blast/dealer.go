package blast

import (
	"math/rand"

	"github.com/vovakirdan/tui-blast/internal/core"
)

// HandSize is the number of pieces dealt at once.
const HandSize = 3

// Piece is a dealt shape with its display color.
type Piece struct {
	Shape Shape
	Color core.Color
}

// Hand is the batch of pieces currently available to the player.
type Hand [HandSize]Piece

// Shapes returns the hand's shapes in slot order.
func (h Hand) Shapes() []Shape {
	out := make([]Shape, 0, HandSize)
	for _, p := range h {
		out = append(out, p.Shape)
	}
	return out
}

// DefaultPalette is the seven-color set pieces are painted with.
func DefaultPalette() []core.Color {
	return []core.Color{
		core.ColorPink,
		core.ColorBrightBlue,
		core.ColorGreen,
		core.ColorOrange,
		core.ColorMagenta,
		core.ColorCyan,
		core.ColorYellow,
	}
}

// Dealer draws hands uniformly from a catalog. The same seed always produces
// the same sequence of hands.
type Dealer struct {
	rng     *rand.Rand
	catalog Catalog
	palette []core.Color
}

// NewDealer creates a dealer. An empty palette falls back to DefaultPalette.
func NewDealer(catalog Catalog, palette []core.Color, seed int64) *Dealer {
	if len(palette) == 0 {
		palette = DefaultPalette()
	}
	return &Dealer{
		rng:     rand.New(rand.NewSource(seed)),
		catalog: catalog,
		palette: append([]core.Color(nil), palette...),
	}
}

// Deal draws a fresh hand.
func (d *Dealer) Deal() Hand {
	var h Hand
	for i := range h {
		h[i] = Piece{
			Shape: d.catalog[d.rng.Intn(len(d.catalog))],
			Color: d.palette[d.rng.Intn(len(d.palette))],
		}
	}
	return h
}
