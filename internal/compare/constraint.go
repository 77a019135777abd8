package compare

import (
	"sort"

	"pgschemadiff/internal/ast"
)

// compareConstraints implements spec §4.4 step 5: gather every
// column- and table-scoped constraint from both element lists into a
// constraintView, match pairs by name (or by fingerprint when
// ignore_constraint_names is set), and record one Diff per
// added/removed/modified constraint.
func compareConstraints(srcElems, tgtElems []ast.TableElement, td *TableDiff, opts Options, sink DiagnosticSink) {
	srcViews := collectConstraintViews(srcElems)
	tgtViews := collectConstraintViews(tgtElems)

	pairs := matchConstraints(srcViews, tgtViews, opts, td.Name, sink)

	for _, p := range pairs {
		switch {
		case p.old == nil:
			td.AddedConstraints = append(td.AddedConstraints, &ConstraintDiff{Name: p.new.Name, New: p.new})
			td.addDiff(ConstraintAdded, constraintElementName(p.new), "", p.new.Kind, "constraint added")
		case p.new == nil:
			td.RemovedConstraints = append(td.RemovedConstraints, &ConstraintDiff{Name: p.old.Name, Old: p.old})
			td.addDiff(ConstraintRemoved, constraintElementName(p.old), p.old.Kind, "", "constraint removed")
		default:
			if p.old.fingerprint(opts) == p.new.fingerprint(opts) {
				continue
			}
			td.ModifiedConstraints = append(td.ModifiedConstraints, &ConstraintDiff{Name: p.new.Name, Old: p.old, New: p.new})
			td.addDiff(ConstraintModified, constraintElementName(p.new), p.old.Kind, p.new.Kind, "constraint definition changed")
		}
	}
}

func constraintElementName(v *constraintView) string {
	if v.Name != "" {
		return v.Name
	}
	return v.Kind
}

func collectConstraintViews(elems []ast.TableElement) []*constraintView {
	var views []*constraintView
	for _, e := range elems {
		switch e.Kind {
		case ast.ElementColumn:
			if e.Column == nil {
				continue
			}
			for i := range e.Column.Constraints {
				if v := viewFromColumnConstraint(e.Column, &e.Column.Constraints[i]); v != nil {
					views = append(views, v)
				}
			}
		case ast.ElementTableConstraint:
			if v := viewFromTableConstraint(e.Constraint); v != nil {
				views = append(views, v)
			}
		}
	}
	return views
}

type constraintPair struct {
	old *constraintView
	new *constraintView
}

// matchConstraints pairs source and target constraint views. Named
// constraints always match by name. Unnamed constraints (or every
// constraint when ignore_constraint_names is set) match by
// fingerprint; duplicate fingerprints are tie-broken in source order,
// first unmatched to first unmatched (spec §9 "constraint matching
// ambiguity").
func matchConstraints(srcViews, tgtViews []*constraintView, opts Options, tableName string, sink DiagnosticSink) []constraintPair {
	var pairs []constraintPair
	srcUsed := make([]bool, len(srcViews))
	tgtUsed := make([]bool, len(tgtViews))

	if !opts.IgnoreConstraintNames {
		for si, sv := range srcViews {
			if sv.Name == "" {
				continue
			}
			for ti, tv := range tgtViews {
				if tgtUsed[ti] || tv.Name != sv.Name {
					continue
				}
				pairs = append(pairs, constraintPair{old: sv, new: tv})
				srcUsed[si], tgtUsed[ti] = true, true
				break
			}
		}
	}

	srcByFP := make(map[string][]int)
	for i, sv := range srcViews {
		if srcUsed[i] || (!opts.IgnoreConstraintNames && sv.Name != "") {
			continue
		}
		fp := sv.fingerprint(opts)
		srcByFP[fp] = append(srcByFP[fp], i)
	}

	for ti, tv := range tgtViews {
		if tgtUsed[ti] || (!opts.IgnoreConstraintNames && tv.Name != "") {
			continue
		}
		fp := tv.fingerprint(opts)
		candidates := srcByFP[fp]
		if len(candidates) == 0 {
			continue
		}
		si := candidates[0]
		if len(candidates) > 1 {
			warnf(sink, "table %s: multiple unnamed constraints share fingerprint %q, matched in source order", tableName, fp)
		}
		srcByFP[fp] = candidates[1:]
		pairs = append(pairs, constraintPair{old: srcViews[si], new: tv})
		srcUsed[si], tgtUsed[ti] = true, true
	}

	for i, sv := range srcViews {
		if !srcUsed[i] {
			pairs = append(pairs, constraintPair{old: sv})
		}
	}
	for i, tv := range tgtViews {
		if !tgtUsed[i] {
			pairs = append(pairs, constraintPair{new: tv})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return constraintSortKey(pairs[i]) < constraintSortKey(pairs[j])
	})
	return pairs
}

func constraintSortKey(p constraintPair) string {
	if p.new != nil {
		return constraintElementName(p.new)
	}
	return constraintElementName(p.old)
}
