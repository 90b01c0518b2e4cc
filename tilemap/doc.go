// Package tilemap provides tile-based graph sources for the astar engine.
//
// Overview:
//
//   - Point is the integer (X, Y, Z) coordinate used as the node type.
//   - Grid is an immutable rectangular map parsed from text rows, one glyph per
//     tile, with a Legend giving each glyph a name, an entry cost and
//     passability. Conn4 moves orthogonally; Conn8 adds diagonals costing √2 ×
//     the destination tile and never cutting a blocked corner.
//   - Sparse is a mutable set of known tiles with no fixed bounds; unknown tiles
//     do not exist as far as the search is concerned.
//   - Components partitions a Grid's passable cells into mutually reachable
//     regions (one roaring bitmap per region) so callers can skip searches that
//     cannot succeed.
//   - Random generates reproducible maps with clustered walls for benchmarks.
//
// Graph contract:
//
//   - Neighbors yields only passable tiles and never the tile itself.
//   - Cost is the cost of entering the destination tile; a blocked, unknown or
//     off-grid destination costs astar.Impassable.
//
// Default legend:
//
//	.  grass   1
//	h  hills   2
//	f  forest  3
//	~  swamp   5
//	#  wall    blocked
//	w  water   blocked
//
// Concurrency:
//
//   - Grid is read-only after Parse; WithTile returns a modified copy.
//   - Sparse guards its tiles with a sync.RWMutex; Snapshot gives a search a
//     stable view while the live set keeps changing.
//
// Errors:
//
//   - ErrEmptyGrid, ErrNonRectangular, ErrUnknownTile, ErrInvalidLegend from Parse.
//   - ErrOutOfBounds, ErrUnknownTile from WithTile.
//   - ErrNegativeCost from Sparse.Set.
package tilemap
