package maths

import "sort"

// jEntry 记录 J 矩阵某一行里的一个非零元：它所在的列，以及它在 J 的
// CSC 数值缓冲区里的槽位，这样每次迭代重新装配 JᵀJ 时不需要再做二分查找。
type jEntry struct {
	Col  int
	Slot int
}

// NormalEqPattern 是 JᵀJ 的符号结构，在 rectangular（超定）情形下复用，
// 对应 spec §4.4 的"正规方程 JᵀJ Δ = Jᵀr，复用 JᵀJ 对称稀疏模式"。
type NormalEqPattern struct {
	ncols    int
	rows     [][]int
	jRowEnts [][]jEntry
}

// BuildNormalEqPattern 从 J 的符号结构推导 JᵀJ 的符号结构：
// 两列在 JᵀJ 中有非零交叉项，当且仅当它们在 J 的某一行里都有非零元。
func BuildNormalEqPattern(j *CSCPattern) *NormalEqPattern {
	jRowEnts := make([][]jEntry, j.Rows)
	for c := 0; c < j.Cols; c++ {
		for k := j.ColPtr[c]; k < j.ColPtr[c+1]; k++ {
			r := j.RowIdx[k]
			jRowEnts[r] = append(jRowEnts[r], jEntry{Col: c, Slot: k})
		}
	}

	active := make([]map[int]struct{}, j.Cols)
	for i := range active {
		active[i] = map[int]struct{}{i: {}}
	}
	for _, ents := range jRowEnts {
		for _, ea := range ents {
			for _, eb := range ents {
				active[ea.Col][eb.Col] = struct{}{}
			}
		}
	}

	rows := make([][]int, j.Cols)
	for i := range rows {
		for c := range active[i] {
			rows[i] = append(rows[i], c)
		}
		sort.Ints(rows[i])
	}
	return &NormalEqPattern{ncols: j.Cols, rows: rows, jRowEnts: jRowEnts}
}

// StructuralRows 暴露 JᵀJ 每一行的列索引集合，供 NewSparseLU 做符号分解。
func (p *NormalEqPattern) StructuralRows() [][]int { return p.rows }

// NCols 返回 JᵀJ 的维度（等于 J 的列数，即变量个数）。
func (p *NormalEqPattern) NCols() int { return p.ncols }

// NewMatrix 按 JᵀJ 的符号结构分配一个可重用的数值矩阵。
func (p *NormalEqPattern) NewMatrix() *RowSparse {
	return NewRowSparse(p.ncols, p.rows)
}

// Assemble 把 A = JᵀJ + λI 的当前数值写入 out（结构不变，数值重算）。
func (p *NormalEqPattern) Assemble(j *JacobianCache, lambda float64, out *RowSparse) {
	out.Zero()
	for _, ents := range p.jRowEnts {
		for _, ea := range ents {
			va := j.Values[ea.Slot]
			if va == 0 {
				continue
			}
			for _, eb := range ents {
				vb := j.Values[eb.Slot]
				if vb == 0 {
					continue
				}
				out.AddAt(ea.Col, eb.Col, va*vb)
			}
		}
	}
	for i := 0; i < p.ncols; i++ {
		out.AddAt(i, i, lambda)
	}
}

// colEntry records one nonzero of J within a single column: the row it
// falls on, and its slot in J's CSC value buffer.
type colEntry struct {
	Row  int
	Slot int
}

// RowSpacePattern is JJᵀ's symbolic structure: the mirror image of
// NormalEqPattern used when a tier has fewer residual rows than local
// variables (a genuinely underconstrained tier, e.g. one remaining
// rotational degree of freedom). The minimum-norm Newton step solves
// JJᵀ y = -r for y and recovers Δ = Jᵀy, the standard right-pseudoinverse
// treatment for a wide Jacobian, reusing JJᵀ's symmetric sparsity pattern
// the same way the overconstrained path reuses JᵀJ's.
type RowSpacePattern struct {
	nrows   int
	rows    [][]int
	colEnts [][]colEntry
}

// BuildRowSpacePattern derives JJᵀ's symbolic structure from J's: two rows
// cross-interact in JJᵀ iff they share a nonzero in some column of J,
// which CSCPattern already groups by column.
func BuildRowSpacePattern(j *CSCPattern) *RowSpacePattern {
	colEnts := make([][]colEntry, j.Cols)
	for c := 0; c < j.Cols; c++ {
		for k := j.ColPtr[c]; k < j.ColPtr[c+1]; k++ {
			colEnts[c] = append(colEnts[c], colEntry{Row: j.RowIdx[k], Slot: k})
		}
	}

	active := make([]map[int]struct{}, j.Rows)
	for i := range active {
		active[i] = map[int]struct{}{i: {}}
	}
	for _, ents := range colEnts {
		for _, ea := range ents {
			for _, eb := range ents {
				active[ea.Row][eb.Row] = struct{}{}
			}
		}
	}

	rows := make([][]int, j.Rows)
	for i := range rows {
		for c := range active[i] {
			rows[i] = append(rows[i], c)
		}
		sort.Ints(rows[i])
	}
	return &RowSpacePattern{nrows: j.Rows, rows: rows, colEnts: colEnts}
}

// StructuralRows exposes JJᵀ's row-wise column sets for NewSparseLU.
func (p *RowSpacePattern) StructuralRows() [][]int { return p.rows }

// NRows returns JJᵀ's dimension (J's row count).
func (p *RowSpacePattern) NRows() int { return p.nrows }

// NewMatrix allocates a reusable numeric matrix over JJᵀ's pattern.
func (p *RowSpacePattern) NewMatrix() *RowSparse {
	return NewRowSparse(p.nrows, p.rows)
}

// Assemble writes A = JJᵀ + λI's current values into out.
func (p *RowSpacePattern) Assemble(j *JacobianCache, lambda float64, out *RowSparse) {
	out.Zero()
	for _, ents := range p.colEnts {
		for _, ea := range ents {
			va := j.Values[ea.Slot]
			if va == 0 {
				continue
			}
			for _, eb := range ents {
				vb := j.Values[eb.Slot]
				if vb == 0 {
					continue
				}
				out.AddAt(ea.Row, eb.Row, va*vb)
			}
		}
	}
	for i := 0; i < p.nrows; i++ {
		out.AddAt(i, i, lambda)
	}
}
