package adexpr

import "gonum.org/v1/gonum/mat"

// Grid is a single computational subdomain. The package only needs entity
// counts; geometry stays with the caller. Implementations must be comparable,
// since grids key context lookups.
type Grid interface {
	NumCells() int
	NumFaces() int
	NumNodes() int
}

// Edge is the interface between two grids of adjacent dimension, ordered
// higher-dimensional first. Edges carry no entity counts of their own;
// unknowns on an edge state their cell count explicitly.
type Edge struct {
	Hi, Lo Grid
}

// GridLike identifies the entity an operator or unknown lives on: either a
// subdomain grid or an interface edge.
type GridLike struct {
	g    Grid
	e    Edge
	edge bool
}

// OnGrid makes a GridLike for a subdomain.
func OnGrid(g Grid) GridLike { return GridLike{g: g} }

// OnEdge makes a GridLike for an interface.
func OnEdge(e Edge) GridLike { return GridLike{e: e, edge: true} }

// IsEdge reports whether the entity is an interface.
func (gl GridLike) IsEdge() bool { return gl.edge }

// Grid returns the subdomain grid, if the entity is one.
func (gl GridLike) Grid() (Grid, bool) { return gl.g, !gl.edge }

// Edge returns the interface edge, if the entity is one.
func (gl GridLike) Edge() (Edge, bool) { return gl.e, gl.edge }

func (gl GridLike) String() string {
	if gl.edge {
		return "edge"
	}
	return "grid"
}

// DiscrMatrices is the precomputed store of discretization matrices on one
// entity, keyed first by discretization keyword and then by sub-matrix name.
type DiscrMatrices map[string]map[string]mat.Matrix

// Context supplies per-entity discretization matrices during evaluation. It
// is owned by the caller and treated as read-only for the duration of a
// parse; it typically fronts the data stores of a mixed-dimensional grid.
type Context interface {
	// Matrices returns the matrix store for an entity, reporting false if the
	// entity is unknown to the context.
	Matrices(on GridLike) (DiscrMatrices, bool)
}

// StaticContext is a map-backed Context. The zero value is an empty context,
// which suffices for evaluating trees of numeric leaves.
type StaticContext struct {
	Grids map[Grid]DiscrMatrices
	Edges map[Edge]DiscrMatrices
}

// Matrices implements Context.
func (c StaticContext) Matrices(on GridLike) (DiscrMatrices, bool) {
	if e, ok := on.Edge(); ok {
		d, ok := c.Edges[e]
		return d, ok
	}
	g, _ := on.Grid()
	d, ok := c.Grids[g]
	return d, ok
}
