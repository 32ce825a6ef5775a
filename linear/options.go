package linear

// Solver selects the internal algorithm used to solve the least-squares system.
type Solver int

const (
	// NormalEquations solves theta = (X^T X)^-1 X^T y by explicit inversion
	// of the Gram matrix, in a fixed, documented operation order.
	NormalEquations Solver = iota
	// QR solves the system by QR factorization of X with back-substitution.
	// Numerically preferable for ill-conditioned designs; agrees with
	// NormalEquations within floating-point tolerance.
	QR
)

// String returns the solver name used in logs.
func (s Solver) String() string {
	switch s {
	case NormalEquations:
		return "normal_equations"
	case QR:
		return "qr"
	default:
		return "unknown"
	}
}

// Option is a function that configures OLSEstimator
type Option func(*OLSEstimator)

// WithSolver selects the internal least-squares solver
func WithSolver(s Solver) Option {
	return func(e *OLSEstimator) {
		e.solver = s
	}
}

// WithConditionThreshold sets the Gram-matrix condition number above which
// an IllConditionedWarning is emitted. The fit still succeeds.
func WithConditionThreshold(threshold float64) Option {
	return func(e *OLSEstimator) {
		e.condThreshold = threshold
	}
}

// WithCloneInputs sets whether Fit works on a private copy of X and y.
// Cloning protects the solve against concurrent mutation by the caller.
func WithCloneInputs(clone bool) Option {
	return func(e *OLSEstimator) {
		e.cloneInputs = clone
	}
}
