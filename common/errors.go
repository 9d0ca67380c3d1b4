package common

// InvariantViolation reports which named payment URI invariant a value broke.
type InvariantViolation struct {
	Invariant string
	Err       error
}

func (e *InvariantViolation) Error() string { return e.Invariant + ": " + e.Err.Error() }

func (e *InvariantViolation) Unwrap() error { return e.Err }
