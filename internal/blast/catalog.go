package blast

import "fmt"

// Catalog is an ordered, read-only table of shapes. Pieces reference shapes by value.
type Catalog []Shape

var defaultCatalog = Catalog{
	MustParseShape("T", "###", ".#."),
	MustParseShape("Square", "##", "##"),
	MustParseShape("L", "###", "#.."),
	MustParseShape("J", "###", "..#"),
	MustParseShape("Line", "###"),
	MustParseShape("Vertical Line", "#", "#", "#"),
	MustParseShape("Z", "##.", ".##"),
	MustParseShape("S", ".##", "##."),
}

// DefaultCatalog returns a copy of the built-in eight shapes.
func DefaultCatalog() Catalog {
	out := make(Catalog, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}

// Index returns the position of the named shape, or -1.
func (c Catalog) Index(name string) int {
	for i, s := range c {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// Lookup returns the named shape.
func (c Catalog) Lookup(name string) (Shape, bool) {
	if i := c.Index(name); i >= 0 {
		return c[i], true
	}
	return Shape{}, false
}

// Validate checks the catalog is usable for dealing.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("blast: empty shape catalog")
	}
	seen := make(map[string]bool, len(c))
	for i, s := range c {
		if s.Empty() {
			return fmt.Errorf("blast: catalog shape %d (%q) is empty", i, s.Name)
		}
		if s.Name != "" && seen[s.Name] {
			return fmt.Errorf("blast: duplicate catalog shape %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}
