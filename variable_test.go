package adexpr_test

import (
	"errors"
	"testing"

	"github.com/mdgrid/adexpr"
)

func TestVariableSize(t *testing.T) {
	g := &testGrid{cells: 5, faces: 12, nodes: 8}
	cases := []struct {
		name string
		dof  adexpr.Dof
		want int
	}{
		{"cellwise", adexpr.Dof{Cells: 1}, 5},
		{"vector-cellwise", adexpr.Dof{Cells: 3}, 15},
		{"facewise", adexpr.Dof{Faces: 1}, 12},
		{"mixed", adexpr.Dof{Cells: 2, Faces: 1, Nodes: 1}, 30},
		{"none", adexpr.Dof{}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := adexpr.NewVariable("p", c.dof, g)
			if got := v.Size(); got != c.want {
				t.Errorf("wrong size: want %d, got %d", c.want, got)
			}
			if v.IsInterface() {
				t.Error("grid variable claims to be on an interface")
			}
		})
	}
}

func TestEdgeVariableSize(t *testing.T) {
	e := adexpr.Edge{Hi: &testGrid{cells: 8}, Lo: &testGrid{cells: 4}}
	v := adexpr.NewEdgeVariable("mortar_flux", adexpr.Dof{Cells: 2, Faces: 7}, e, 6)
	// Only cell degrees of freedom count on an interface.
	if got := v.Size(); got != 12 {
		t.Errorf("wrong size: want 12, got %d", got)
	}
	if !v.IsInterface() {
		t.Error("edge variable does not claim to be on an interface")
	}
}

func TestVariableIDs(t *testing.T) {
	g := &testGrid{cells: 1}
	a := adexpr.NewVariable("p", adexpr.Dof{Cells: 1}, g)
	b := adexpr.NewVariable("p", adexpr.Dof{Cells: 1}, g)
	if a.ID() == b.ID() {
		t.Error("two declarations share an id")
	}
	if b.ID() <= a.ID() {
		t.Errorf("ids do not increase: %d then %d", a.ID(), b.ID())
	}
}

func TestMergeVariables(t *testing.T) {
	g1 := &testGrid{cells: 3}
	g2 := &testGrid{cells: 5}
	a := adexpr.NewVariable("p", adexpr.Dof{Cells: 1}, g1)
	b := adexpr.NewVariable("p", adexpr.Dof{Cells: 1}, g2)

	mv, err := adexpr.MergeVariables(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if mv.Name() != "p" {
		t.Errorf("wrong name: %q", mv.Name())
	}
	if got := mv.Size(); got != 8 {
		t.Errorf("wrong size: want 8, got %d", got)
	}
	subs := mv.SubVariables()
	if len(subs) != 2 || subs[0] != a || subs[1] != b {
		t.Errorf("wrong constituents: %v", subs)
	}
	if mv.ID() == a.ID() || mv.ID() == b.ID() {
		t.Error("merged variable reuses a constituent id")
	}
	if mv.IsInterface() {
		t.Error("merged grid variable claims to be on an interface")
	}
	if !mv.IsLeaf() {
		t.Error("merged variable is not a leaf")
	}
}

func TestMergeVariablesMismatch(t *testing.T) {
	g := &testGrid{cells: 3}
	a := adexpr.NewVariable("p", adexpr.Dof{Cells: 1}, g)
	b := adexpr.NewVariable("T", adexpr.Dof{Cells: 1}, g)
	_, err := adexpr.MergeVariables(a, b)
	var nme *adexpr.NameMismatchError
	if !errors.As(err, &nme) {
		t.Fatalf("want NameMismatchError, got %v", err)
	}
	if nme.Want != "p" || nme.Got != "T" {
		t.Errorf("wrong detail: %+v", nme)
	}
}

func TestMergeEdgeVariables(t *testing.T) {
	e1 := adexpr.Edge{Hi: &testGrid{cells: 4}, Lo: &testGrid{cells: 2}}
	e2 := adexpr.Edge{Hi: &testGrid{cells: 2}, Lo: &testGrid{cells: 1}}
	a := adexpr.NewEdgeVariable("lambda", adexpr.Dof{Cells: 1}, e1, 4)
	b := adexpr.NewEdgeVariable("lambda", adexpr.Dof{Cells: 1}, e2, 2)
	mv, err := adexpr.MergeVariables(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !mv.IsInterface() {
		t.Error("merged edge variable does not claim to be on an interface")
	}
	if got := mv.Size(); got != 6 {
		t.Errorf("wrong size: want 6, got %d", got)
	}
}

func TestVariableParse(t *testing.T) {
	g := &testGrid{cells: 3}
	a := adexpr.NewVariable("p", adexpr.Dof{Cells: 1}, g)
	_, err := a.Parse(adexpr.StaticContext{})
	var npe *adexpr.NotParsableError
	if !errors.As(err, &npe) {
		t.Fatalf("want NotParsableError, got %v", err)
	}
	// The error names the unknown, not a tree operation.
	if npe.Var != "p" {
		t.Errorf("error does not name the variable: %+v", npe)
	}

	mv, err := adexpr.MergeVariables(a)
	if err != nil {
		t.Fatal(err)
	}
	_, err = mv.Parse(adexpr.StaticContext{})
	if !errors.As(err, &npe) {
		t.Fatalf("want NotParsableError, got %v", err)
	}
	if npe.Var != "p" {
		t.Errorf("error does not name the merged variable: %+v", npe)
	}
}
