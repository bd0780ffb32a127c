package table

import "slices"

// JoinKind selects which side of a merge keeps all of its rows.
type JoinKind int

const (
	// JoinLeft keeps every row of the existing table.
	JoinLeft JoinKind = iota
	// JoinRight keeps every row of the incoming table.
	JoinRight
)

func (k JoinKind) String() string {
	if k == JoinLeft {
		return "left"
	}
	return "right"
}

// ChooseJoin picks the merge direction for an existing table of n rows and
// an incoming series of m rows: left only when the existing side is strictly
// larger. Which periods survive downstream depends on this rule, so it must
// not be replaced by a symmetric outer join.
func ChooseJoin(n, m int) JoinKind {
	if n > m {
		return JoinLeft
	}
	return JoinRight
}

// Merge joins right onto left on the period-end key. The kept side supplies
// the rows and their order; cells of the other side that have no matching
// period are NaN. Columns of left come first, then the columns of right that
// left does not already have.
func Merge(left, right *Table, kind JoinKind) *Table {
	keys := left.keys
	if kind == JoinRight {
		keys = right.keys
	}
	out := left.shell(keys)
	for _, side := range []*Table{left, right} {
		for _, c := range side.columns {
			if slices.Contains(out.columns, c) {
				continue
			}
			col := nulls(len(keys))
			src := side.data[c]
			for i, k := range keys {
				if j, ok := side.index[k]; ok {
					col[i] = src[j]
				}
			}
			out.columns = append(out.columns, c)
			out.data[c] = col
		}
	}
	return out
}

// LeftJoin keeps every row of left and attaches the columns of right by
// period end. Missing matches are NaN; no row is ever dropped.
func LeftJoin(left, right *Table) *Table {
	return Merge(left, right, JoinLeft)
}

// LeftJoinOn is LeftJoin with the period-end key of left mapped through
// keyOf before the lookup into right (e.g. truncation to year-month).
func LeftJoinOn(left, right *Table, keyOf func(string) string) *Table {
	out := left.Clone()
	for _, c := range right.columns {
		if out.Has(c) {
			continue
		}
		col := nulls(len(out.keys))
		src := right.data[c]
		for i, k := range out.keys {
			if j, ok := right.index[keyOf(k)]; ok {
				col[i] = src[j]
			}
		}
		out.columns = append(out.columns, c)
		out.data[c] = col
	}
	return out
}
