package gametree

// Config is the set of board toggles. Operations take a snapshot of it per
// call; nothing in the package reads a global.
type Config struct {
	// AutoPromote promotes to a queen without asking unless the
	// force-dialog modifier is held.
	AutoPromote bool
	// ForcedEnPassant exposes only en-passant captures whenever one is legal.
	ForcedEnPassant bool
	// NoVariations freezes the tree: moves are accepted only from a leaf.
	NoVariations bool
	// ShowArrows controls whether arrow shapes reach the view.
	ShowArrows bool
}

// DefaultConfig returns the toggles an analysis board starts with.
func DefaultConfig() Config {
	return Config{ShowArrows: true}
}
