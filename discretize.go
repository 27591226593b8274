package adexpr

import (
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Discr is a discretization scheme that has been run on a grid. Rather than
// being inspected for attributes, a scheme declares its products: Keyword
// names the matrix dictionary its results were stored under, and MatrixKeys
// is the ordered manifest of sub-matrix names it contributes.
type Discr interface {
	Keyword() string
	MatrixKeys() []string
}

// GridDiscr pairs an entity with the discretization applied to it. Mappings
// are ordered slices so that merged results are deterministic.
type GridDiscr struct {
	On    GridLike
	Discr Discr
}

// MergedOperator is one named discretization sub-matrix merged
// block-diagonally across a collection of grids, so it acts as a single
// matrix over the combined degrees of freedom.
type MergedOperator struct {
	leaf
	grids []GridDiscr
	key   string

	// matDictKey overrides the discretizations' own keyword when locating
	// the matrix dictionary. Needed by schemes that store their matrices
	// under a shared keyword, such as poromechanics couplings.
	matDictKey string
}

// NewMergedOperator merges the sub-matrix named key across the mapping.
// A non-empty matDictKey overrides each discretization's keyword when
// resolving the matrix dictionary.
func NewMergedOperator(grids []GridDiscr, key, matDictKey string) *MergedOperator {
	return &MergedOperator{grids: grids, key: key, matDictKey: matDictKey}
}

// Key returns the sub-matrix name this operator extracts.
func (op *MergedOperator) Key() string { return op.key }

// Parse extracts the named sub-matrix for every entity in mapping order and
// returns their block-diagonal concatenation. A missing entity, dictionary
// or sub-matrix yields a *LookupError; a missing sub-matrix usually means
// the discretization has not been run yet.
func (op *MergedOperator) Parse(ctx Context) (Value, error) {
	ms := make([]mat.Matrix, 0, len(op.grids))
	for _, gd := range op.grids {
		store, ok := ctx.Matrices(gd.On)
		if !ok {
			return nil, &LookupError{On: gd.On, Key: op.key}
		}
		kw := op.matDictKey
		if kw == "" {
			kw = gd.Discr.Keyword()
		}
		dict, ok := store[kw]
		if !ok {
			return nil, &LookupError{On: gd.On, Keyword: kw, Key: op.key}
		}
		m, ok := dict[op.key]
		if !ok {
			return nil, &LookupError{On: gd.On, Keyword: kw, Key: op.key, Computed: true}
		}
		ms = append(ms, m)
	}
	return SpMat{blockDiag(ms)}, nil
}

func (op *MergedOperator) String() string {
	return op.key + "(" + strconv.Itoa(len(op.grids)) + " grids)"
}

// Discretization merges a discretization scheme across grids, exposing one
// MergedOperator per sub-matrix in the schemes' shared manifest.
type Discretization struct {
	grids []GridDiscr
	name  string
	keys  []string
	ops   map[string]*MergedOperator
}

// NewDiscretization validates that every scheme in the mapping declares the
// same manifest and builds a MergedOperator for each declared key. Schemes
// with differing or duplicated manifests yield a *NonUniformError. matDictKey is passed
// through to the merged operators; leave it empty to use each scheme's own
// keyword.
func NewDiscretization(grids []GridDiscr, matDictKey string) (*Discretization, error) {
	if len(grids) == 0 {
		panic("adexpr: discretization over no grids")
	}
	keys := grids[0].Discr.MatrixKeys()
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		if want[k] {
			return nil, &NonUniformError{Keyword: grids[0].Discr.Keyword(), Key: k}
		}
		want[k] = true
	}
	for _, gd := range grids[1:] {
		got := gd.Discr.MatrixKeys()
		seen := make(map[string]bool, len(got))
		for _, k := range got {
			if !want[k] || seen[k] {
				return nil, &NonUniformError{Keyword: gd.Discr.Keyword(), Key: k}
			}
			seen[k] = true
		}
		if len(seen) != len(want) {
			return nil, &NonUniformError{Keyword: gd.Discr.Keyword()}
		}
	}

	ops := make(map[string]*MergedOperator, len(keys))
	for _, k := range keys {
		ops[k] = NewMergedOperator(grids, k, matDictKey)
	}
	return &Discretization{
		grids: grids,
		name:  mergedName(grids),
		keys:  keys,
		ops:   ops,
	}, nil
}

// Name returns the merged scheme name, joined from the distinct keywords in
// the mapping.
func (d *Discretization) Name() string { return d.name }

// Keys returns the manifest in the first scheme's declared order.
func (d *Discretization) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Operator returns the merged operator for a manifest key.
func (d *Discretization) Operator(key string) (*MergedOperator, bool) {
	op, ok := d.ops[key]
	return op, ok
}

func (d *Discretization) String() string {
	return "discretization " + d.name + " on " + strconv.Itoa(len(d.grids)) + " grids"
}

func mergedName(grids []GridDiscr) string {
	seen := make(map[string]bool)
	var names []string
	for _, gd := range grids {
		kw := gd.Discr.Keyword()
		if !seen[kw] {
			seen[kw] = true
			names = append(names, kw)
		}
	}
	sort.Strings(names)
	return strings.Join(names, "_")
}

// LookupError reports a failed lookup during merged-operator parsing: the
// context has no data for an entity, a matrix dictionary is missing, or the
// dictionary lacks the requested sub-matrix.
type LookupError struct {
	// On is the entity the lookup was for.
	On GridLike
	// Keyword is the matrix dictionary key, when resolution got that far.
	Keyword string
	// Key is the sub-matrix name.
	Key string
	// Computed indicates the dictionary existed but the sub-matrix did not,
	// i.e. the discretization has likely not been computed.
	Computed bool
}

func (err *LookupError) Error() string {
	if err.Keyword == "" {
		return "no data for " + err.On.String() + " in evaluation context (looking up " + strconv.Quote(err.Key) + ")"
	}
	if err.Computed {
		return "no sub-matrix " + strconv.Quote(err.Key) + " under keyword " + strconv.Quote(err.Keyword) +
			" on " + err.On.String() + "; has the discretization been computed?"
	}
	return "no matrix dictionary " + strconv.Quote(err.Keyword) + " on " + err.On.String()
}

// NonUniformError reports a merged discretization whose schemes do not agree
// on the sub-matrices they produce.
type NonUniformError struct {
	// Keyword identifies the disagreeing scheme.
	Keyword string
	// Key is the disagreeing sub-matrix name, absent from the first scheme's
	// manifest or declared twice, when the disagreement was a specific key
	// rather than a count mismatch.
	Key string
}

func (err *NonUniformError) Error() string {
	s := "merged discretization must have a uniform set of sub-matrices; " +
		strconv.Quote(err.Keyword) + " disagrees"
	if err.Key != "" {
		s += " on " + strconv.Quote(err.Key)
	}
	return s
}
