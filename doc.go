// Package adexpr assembles discretized PDE residuals as lazy operator trees
// over mixed-dimensional grids.
//
// Equations are built by composing leaf operators — wrapped scalars, dense
// vectors and sparse matrices, unknowns on grids or interfaces, and
// discretization sub-matrices merged block-diagonally across grids — with
// Add, Sub, Mul and Div. Nothing numeric happens at composition time; a tree
// is evaluated against a concrete Context only when Evaluate is called, or it
// can be handed to an external equation driver that walks it node by node.
//
// Equations can also be written as text, with names bound to operators:
//
//	flux, _ := adexpr.ParseString("div * darcy(p) - src", adexpr.Bind("p", p), ...)
//
// Trees are immutable after construction and safe to evaluate concurrently
// against a shared context.
package adexpr
