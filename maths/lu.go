package maths

import (
	"errors"
	"math"
)

// Epsilon 是判定主元退化为零的阈值，贯穿稠密/稀疏两套求解路径。
const Epsilon = 1e-12

// ErrSingular 在数值分解阶段主元退化到 Epsilon 以下时返回。
// Newton 引擎把它当作局部可恢复错误：收缩阻尼因子后重试。
var ErrSingular = errors.New("maths: matrix is singular to working precision")

// SparseLU 把一次符号分解（填充模式，tier 内固定）与反复的数值分解
// （每次迭代按当前数值重做）分离开来，对应 spec §4.4 的两阶段设计。
// 消元顺序固定为自然顺序：法方程（JᵀJ 或 JJᵀ）矩阵靠 Newton 引擎加在
// 对角线上的 ridge 正则项（与步长阻尼因子 λ 无关；方阵情形不加）保持良态，
// 因此不做部分主元交换，只在主元退化时上报 ErrSingular。
type SparseLU struct {
	n     int
	a     *RowSparse // 原地分解：下三角部分变成乘子，上三角(含对角)部分变成 U
	y     Vector     // 前向替换的中间缓冲
}

// NewSparseLU 用给定方阵的结构化行模式一次性完成符号分解。
func NewSparseLU(n int, structRows [][]int) *SparseLU {
	lower, upper := symbolicFill(n, structRows)
	full := make([][]int, n)
	for i := 0; i < n; i++ {
		full[i] = append(append([]int{}, lower[i]...), upper[i]...)
	}
	return &SparseLU{n: n, a: NewRowSparse(n, full), y: NewVector(n)}
}

// Decompose 执行数值分解：把 src 的当前值写入已固定的结构中，随后原地消元。
// src 的非零模式必须是符号阶段所用模式的子集。
func (lu *SparseLU) Decompose(src *RowSparse) error {
	lu.a.Zero()
	for i := 0; i < lu.n; i++ {
		cols, vals := src.GetRow(i)
		for idx, c := range cols {
			lu.a.Set(i, c, vals[idx])
		}
	}

	for k := 0; k < lu.n; k++ {
		pivot := lu.a.Get(k, k)
		if math.Abs(pivot) < Epsilon {
			return ErrSingular
		}
		kCols, kVals := lu.a.GetRow(k)
		parallelRowUpdate(k+1, lu.n, func(i int) {
			valIK := lu.a.Get(i, k)
			if valIK == 0 {
				return
			}
			factor := valIK / pivot
			lu.a.Set(i, k, factor)
			for idx, j := range kCols {
				if j <= k {
					continue
				}
				updated := lu.a.Get(i, j) - factor*kVals[idx]
				lu.a.Set(i, j, updated)
			}
		})
	}
	return nil
}

// SolveReuse 用已完成的数值分解求解 A x = b，重用预分配的 x（和内部的 y），
// 热路径内不分配任何内存。
func (lu *SparseLU) SolveReuse(b, x Vector) error {
	for i := 0; i < lu.n; i++ {
		sum := b[i]
		cols, vals := lu.a.GetRow(i)
		for idx, j := range cols {
			if j < i {
				sum -= vals[idx] * lu.y[j]
			}
		}
		lu.y[i] = sum
	}
	for i := lu.n - 1; i >= 0; i-- {
		sum := lu.y[i]
		cols, vals := lu.a.GetRow(i)
		for idx, j := range cols {
			if j > i {
				sum -= vals[idx] * x[j]
			}
		}
		diag := lu.a.Get(i, i)
		if math.Abs(diag) < Epsilon {
			return ErrSingular
		}
		x[i] = sum / diag
	}
	return nil
}
