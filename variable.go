package adexpr

import (
	"strconv"
	"sync/atomic"
)

// Dof is the number of degrees of freedom an unknown carries per grid
// entity.
type Dof struct {
	Cells, Faces, Nodes int
}

// varids hands out variable identities for the lifetime of the process.
// Variables with the same name on different grids stay distinguishable
// through their ids.
var varids atomic.Uint64

// Variable is an unknown on a single grid or interface. It is a leaf in the
// expression tree; a concrete state for it is supplied by the equation
// driver, so Parse reports not parsable.
type Variable struct {
	leaf
	name string
	dof  Dof
	on   GridLike

	// numCells is the cell count of an interface, which the Edge itself
	// cannot provide.
	numCells int

	id uint64
}

// NewVariable declares an unknown named name on subdomain g.
func NewVariable(name string, dof Dof, g Grid) *Variable {
	return &Variable{
		name: name,
		dof:  dof,
		on:   OnGrid(g),
		id:   varids.Add(1),
	}
}

// NewEdgeVariable declares an unknown on interface e with numCells mortar
// cells. Only cell degrees of freedom are meaningful on an interface.
func NewEdgeVariable(name string, dof Dof, e Edge, numCells int) *Variable {
	return &Variable{
		name:     name,
		dof:      dof,
		on:       OnEdge(e),
		numCells: numCells,
		id:       varids.Add(1),
	}
}

// Name returns the unknown's name.
func (v *Variable) Name() string { return v.name }

// ID returns the variable's process-wide unique identity.
func (v *Variable) ID() uint64 { return v.id }

// GridLike returns the entity the unknown lives on.
func (v *Variable) GridLike() GridLike { return v.on }

// IsInterface reports whether the unknown lives on an interface.
func (v *Variable) IsInterface() bool { return v.on.IsEdge() }

// Size returns the total number of degrees of freedom.
func (v *Variable) Size() int {
	if v.on.IsEdge() {
		return v.numCells * v.dof.Cells
	}
	g, _ := v.on.Grid()
	return g.NumCells()*v.dof.Cells + g.NumFaces()*v.dof.Faces + g.NumNodes()*v.dof.Nodes
}

// Parse reports not parsable: an unknown has no value until the equation
// driver binds a state to it.
func (v *Variable) Parse(ctx Context) (Value, error) {
	return nil, &NotParsableError{Op: OpVoid, Var: v.name}
}

func (v *Variable) String() string {
	return v.name + "#" + strconv.FormatUint(v.id, 10)
}

// MergedVariable is one logical unknown spread across several grids or
// several interfaces.
type MergedVariable struct {
	leaf
	subs []*Variable
	name string
	id   uint64
}

// MergeVariables combines per-grid unknowns into one merged unknown. All
// constituents must share a name; otherwise the result is a
// *NameMismatchError.
func MergeVariables(vars ...*Variable) (*MergedVariable, error) {
	if len(vars) == 0 {
		panic("adexpr: merge of no variables")
	}
	name := vars[0].name
	for _, v := range vars[1:] {
		if v.name != name {
			return nil, &NameMismatchError{Want: name, Got: v.name}
		}
	}
	return &MergedVariable{
		subs: vars,
		name: name,
		id:   varids.Add(1),
	}, nil
}

// Name returns the shared name of the constituents.
func (mv *MergedVariable) Name() string { return mv.name }

// ID returns the merged variable's own identity.
func (mv *MergedVariable) ID() uint64 { return mv.id }

// SubVariables returns the constituent unknowns in merge order.
func (mv *MergedVariable) SubVariables() []*Variable { return mv.subs }

// IsInterface reports whether the constituents live on interfaces.
func (mv *MergedVariable) IsInterface() bool { return mv.subs[0].IsInterface() }

// Size returns the summed size of the constituents.
func (mv *MergedVariable) Size() int {
	var n int
	for _, v := range mv.subs {
		n += v.Size()
	}
	return n
}

// Parse reports not parsable, as for Variable.
func (mv *MergedVariable) Parse(ctx Context) (Value, error) {
	return nil, &NotParsableError{Op: OpVoid, Var: mv.name}
}

func (mv *MergedVariable) String() string {
	return "merged " + mv.name + "#" + strconv.FormatUint(mv.id, 10) +
		"(" + strconv.Itoa(len(mv.subs)) + ")"
}

// NameMismatchError reports an attempt to merge variables that do not share
// a name.
type NameMismatchError struct {
	// Want is the name of the first variable; Got is the differing name.
	Want, Got string
}

func (err *NameMismatchError) Error() string {
	return "variable name mismatch: cannot merge " + strconv.Quote(err.Got) +
		" into " + strconv.Quote(err.Want)
}
