package solver

import (
	"math"

	"ezpz/maths"
)

// State is the Newton engine's lifecycle: Init -> Iterating -> one terminal
// state. Only Converged and (by caller policy) Stalled carry a usable
// solution; the rest are reported as errors.
type State int

const (
	StateInit State = iota
	StateIterating
	StateConverged
	StateDiverged
	StateCancelled
	StateIterLimit
	StateStalled
	StateSingular
	StateUnderconstrained
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateIterating:
		return "Iterating"
	case StateConverged:
		return "Converged"
	case StateDiverged:
		return "Diverged"
	case StateCancelled:
		return "Cancelled"
	case StateIterLimit:
		return "IterLimit"
	case StateStalled:
		return "Stalled"
	case StateSingular:
		return "Singular"
	case StateUnderconstrained:
		return "Underconstrained"
	}
	return "Unknown"
}

// Control is the value a progress hook returns to continue or cancel the
// solve. It is only consulted between iterations, never mid-factorization.
type Control int

const (
	Continue Control = iota
	Cancel
)

// IterationStats is the borrowed snapshot handed to the progress hook after
// each accepted (or exhausted) iteration.
type IterationStats struct {
	Iter       int
	Residual   float64
	Damping    float64
	StepNorm   float64
}

// Hook is a caller-provided per-iteration callback. It may run on a worker
// goroutine; the engine makes no locking assumptions about it.
type Hook func(IterationStats) Control

// Result is what a completed (or terminated) Newton solve reports back to
// the priority layer.
type Result struct {
	State        State
	Iterations   int
	ResidualNorm float64
}

// ridgeBase is the always-on Tikhonov regularization added to the system
// matrix's diagonal, independent of the public damping factor, so a
// borderline-singular JᵀJ doesn't need to rely on the step damping alone.
const ridgeBase = 1e-10

// relStallIterations is how many consecutive iterations the relative
// residual improvement must stay below ToleranceRel before the engine
// gives up on further progress, per the "relative improvement stalls"
// secondary convergence test.
const relStallIterations = 3

// Solve runs the damped Newton loop described by the Newton engine
// component: refresh residual and Jacobian, solve the linear step (direct
// for a square system, normal equations for an overconstrained one),
// backtrack on divergence, and report termination through the returned
// Result/error pair rather than panicking on runtime data.
func Solve(m *Model, x maths.Vector, cfg Config, hook Hook) (*Result, error) {
	n := m.NCols // local to this tier: only the columns its constraints reference
	rows := m.NRows
	if n == 0 {
		// Empty tier: no constraint in it references any variable. Nothing
		// to iterate on.
		return &Result{State: StateConverged, Iterations: 0, ResidualNorm: 0}, nil
	}

	r := maths.NewVector(rows)
	rTrial := maths.NewVector(rows)
	delta := maths.NewVector(n)
	xTrial := append(maths.Vector{}, x...) // full global vector; only active columns move

	square := rows == n
	underdet := rows < n
	var lu *maths.SparseLU
	var neq *maths.NormalEqPattern
	var rsp *maths.RowSpacePattern
	var A *maths.RowSparse

	// A tier's own constraints can leave it with fewer rows than local
	// variables - a genuine remaining degree of freedom, such as one point
	// free to orbit the last pinned one. That tier takes the minimum-norm
	// step: solve JJᵀ y = -r over the row-space pattern, then recover
	// Δ = Jᵀy, the right-pseudoinverse counterpart of the JᵀJ path used
	// below for the overconstrained case.
	var yUnder maths.Vector
	switch {
	case square:
		structRows := maths.StructuralRows(m.Pattern)
		lu = maths.NewSparseLU(n, structRows)
		A = maths.NewRowSparse(n, structRows)
	case underdet:
		rsp = maths.BuildRowSpacePattern(m.Pattern)
		lu = maths.NewSparseLU(rows, rsp.StructuralRows())
		A = rsp.NewMatrix()
		yUnder = maths.NewVector(rows)
	default:
		neq = maths.BuildNormalEqPattern(m.Pattern)
		lu = maths.NewSparseLU(n, neq.StructuralRows())
		A = neq.NewMatrix()
	}

	sysDim := n
	if underdet {
		sysDim = rows
	}
	rhs := maths.NewVector(sysDim)

	lambda := cfg.Damping.Initial
	if !cfg.Adaptive {
		lambda = 1.0
	}

	m.Residual(x, r)
	relStallCount := 0

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		normR := r.NormInf()
		if normR < cfg.ToleranceAbs {
			return &Result{State: StateConverged, Iterations: iter, ResidualNorm: normR}, nil
		}
		normRStart := normR

		m.RefreshJacobian(x)

		if iter == 0 {
			// A column whose every slot evaluates to exactly zero means
			// some id no active constraint's derivative actually depends
			// on at this x: structurally underconstrained, not just slow.
			// ridge would otherwise absorb it silently, so it is reported
			// once, up front, instead of surfacing as an unexplained stall.
			if zeroCols := m.JC.ZeroColumns(); len(zeroCols) > 0 {
				varIDs := make([]int, len(zeroCols))
				for i, c := range zeroCols {
					varIDs[i] = m.GlobalCols[c]
				}
				return &Result{State: StateUnderconstrained, Iterations: iter, ResidualNorm: r.NormInf()}, &UnderconstrainedColumnError{GlobalVarIDs: varIDs}
			}
		}

		ridge := ridgeBase
		var factored bool
		for retry := 0; retry <= cfg.MaxSingularRetries; retry++ {
			switch {
			case square:
				// J itself, unregularized: a square tier's retry loop can
				// only help by shrinking lambda for the next accepted step,
				// not by changing this iteration's matrix, since ridge has
				// no guaranteed diagonal slot in J's own sparsity pattern
				// the way JᵀJ's and JJᵀ's synthetic diagonals do.
				m.JC.FillRowSparse(A)
			case underdet:
				rsp.Assemble(m.JC, ridge, A)
			default:
				neq.Assemble(m.JC, ridge, A)
			}
			if err := lu.Decompose(A); err != nil {
				if retry == cfg.MaxSingularRetries {
					return &Result{State: StateSingular, Iterations: iter, ResidualNorm: r.NormInf()}, &SingularJacobianError{Iteration: iter}
				}
				ridge *= 10
				lambda *= cfg.Damping.Shrink
				if lambda < cfg.Damping.Min {
					lambda = cfg.Damping.Min
				}
				continue
			}
			factored = true
			break
		}
		if !factored {
			return &Result{State: StateSingular, Iterations: iter, ResidualNorm: r.NormInf()}, &SingularJacobianError{Iteration: iter}
		}

		switch {
		case square, underdet:
			for i := 0; i < sysDim; i++ {
				rhs[i] = -r[i]
			}
		default:
			m.JC.TransposeMatVec(r, rhs)
			for i := range rhs {
				rhs[i] = -rhs[i]
			}
		}

		target := delta
		if underdet {
			target = yUnder
		}
		if err := lu.SolveReuse(rhs, target); err != nil {
			return &Result{State: StateSingular, Iterations: iter, ResidualNorm: r.NormInf()}, &SingularJacobianError{Iteration: iter}
		}
		if underdet {
			m.JC.TransposeMatVec(yUnder, delta)
		}

		applied := lambda
		for i := 0; i < n; i++ {
			xTrial[m.GlobalCols[i]] = x[m.GlobalCols[i]] + applied*delta[i]
		}
		m.Residual(xTrial, rTrial)
		normTrial := rTrial.NormInf()

		if cfg.Adaptive && normR > 0 && normTrial > normR*cfg.Damping.DivergenceRatio {
			alpha := cfg.Damping.Shrink
			recovered := false
			for step := 0; step < cfg.Damping.MaxBacktrackSteps; step++ {
				a := lambda * alpha
				if a < cfg.Damping.Min {
					a = cfg.Damping.Min
				}
				for i := 0; i < n; i++ {
					xTrial[m.GlobalCols[i]] = x[m.GlobalCols[i]] + a*delta[i]
				}
				m.Residual(xTrial, rTrial)
				normTrial = rTrial.NormInf()
				applied = a
				if normTrial < normR {
					recovered = true
					break
				}
				alpha *= cfg.Damping.BacktrackFactor
			}
			lambda *= cfg.Damping.Shrink
			if lambda < cfg.Damping.Min {
				lambda = cfg.Damping.Min
			}
			if !recovered {
				// Every backtracked step, down to the smallest one tried,
				// still grew the residual: the step direction itself is
				// no longer trustworthy this iteration. Report divergence
				// without committing any of it to x.
				return &Result{State: StateDiverged, Iterations: iter, ResidualNorm: normR}, &DivergedError{ResidualNorm: normTrial}
			}
		} else if cfg.Adaptive && normTrial < normR*cfg.AcceptRatio {
			lambda *= cfg.Damping.Grow
			if lambda > cfg.Damping.Max {
				lambda = cfg.Damping.Max
			}
		}

		stepNorm := 0.0
		for i := 0; i < n; i++ {
			s := applied * delta[i]
			x[m.GlobalCols[i]] += s
			if a := math.Abs(s); a > stepNorm {
				stepNorm = a
			}
		}
		m.Residual(x, r)
		normR = r.NormInf()

		if normRStart > 0 && (normRStart-normR)/normRStart < cfg.ToleranceRel {
			relStallCount++
		} else {
			relStallCount = 0
		}

		if hook != nil {
			if hook(IterationStats{Iter: iter, Residual: normR, Damping: lambda, StepNorm: stepNorm}) == Cancel {
				return &Result{State: StateCancelled, Iterations: iter, ResidualNorm: normR}, &CancelledError{}
			}
		}

		stepThreshold := cfg.ToleranceStep * (x.NormInf() + cfg.ToleranceStep)
		if stepNorm <= stepThreshold {
			if normR < cfg.ToleranceConstraint {
				return &Result{State: StateConverged, Iterations: iter + 1, ResidualNorm: normR}, nil
			}
			return &Result{State: StateStalled, Iterations: iter + 1, ResidualNorm: normR}, &StalledError{ResidualNorm: normR}
		}
		if relStallCount >= relStallIterations {
			if normR < cfg.ToleranceConstraint {
				return &Result{State: StateConverged, Iterations: iter + 1, ResidualNorm: normR}, nil
			}
			return &Result{State: StateStalled, Iterations: iter + 1, ResidualNorm: normR}, &StalledError{ResidualNorm: normR}
		}
	}

	return &Result{State: StateIterLimit, Iterations: cfg.MaxIterations, ResidualNorm: r.NormInf()}, &IterLimitError{ResidualNorm: r.NormInf()}
}
