package blast

// CanPlaceAnywhere reports whether s has at least one legal anchor.
func CanPlaceAnywhere(b *Board, s Shape) bool {
	for idx := range b.Len() {
		if CanPlace(b, s, idx) {
			return true
		}
	}
	return false
}

// LegalAnchors lists every anchor at which s can be placed, ascending.
func LegalAnchors(b *Board, s Shape) []int {
	var out []int
	for idx := range b.Len() {
		if CanPlace(b, s, idx) {
			out = append(out, idx)
		}
	}
	return out
}

// Exhausted reports whether none of the shapes fits anywhere: the game-over
// condition. An empty set of shapes is exhausted.
func Exhausted(b *Board, shapes ...Shape) bool {
	for _, s := range shapes {
		if CanPlaceAnywhere(b, s) {
			return false
		}
	}
	return true
}
