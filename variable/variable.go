// Package variable implements named, ordered sweep values and the
// Cartesian-product compiler that turns a collection of variable groups
// into a deterministic stream of per-sweep-point update commands.
//
// A Variable never owns the Sequence that references it: Variables outlive
// Sequences and may be shared across several of them. Only the variable's
// current cursor is mutated, by UpdateVariables, between successive
// Sequence.Compile calls.
package variable

import (
	"errors"
	"fmt"
)

// Sentinel errors for variable registration and binding.
var (
	// ErrEmptyName indicates a Variable was constructed with an empty name.
	ErrEmptyName = errors.New("variable: name is empty")

	// ErrEmptyValues indicates a Variable has no values to select from.
	ErrEmptyValues = errors.New("variable: values slice is empty")

	// ErrIndexOutOfRange indicates SetIndex was called with an out-of-bounds index.
	ErrIndexOutOfRange = errors.New("variable: index out of range")

	// ErrDuplicateName indicates two Variables with the same Name were
	// registered on the same owner (Sequence or Group).
	ErrDuplicateName = errors.New("variable: duplicate name")

	// ErrZippedLengthMismatch indicates a Group was built from Variables
	// whose Len() values differ.
	ErrZippedLengthMismatch = errors.New("variable: zipped variables have different lengths")
)

// Variable is a named, ordered sequence of scalar values sharing a unit
// label, with a cursor selecting the "current" value.
type Variable struct {
	name   string
	unit   string
	values []float64
	index  int
	jitter *Jitter
}

// New constructs a Variable. values must be non-empty; name must be non-empty.
func New(name, unit string, values []float64) (*Variable, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(values) == 0 {
		return nil, ErrEmptyValues
	}

	cp := make([]float64, len(values))
	copy(cp, values)

	return &Variable{name: name, unit: unit, values: cp}, nil
}

// Name returns the variable's name.
func (v *Variable) Name() string { return v.name }

// Unit returns the variable's unit label.
func (v *Variable) Unit() string { return v.unit }

// Len reports the number of values in the sweep.
func (v *Variable) Len() int { return len(v.values) }

// Index returns the current cursor position.
func (v *Variable) Index() int { return v.index }

// Value returns the value currently selected by the cursor.
func (v *Variable) Value() float64 { return v.values[v.index] }

// ValueAt returns the value at a specific index without moving the cursor.
func (v *Variable) ValueAt(i int) (float64, error) {
	if i < 0 || i >= len(v.values) {
		return 0, fmt.Errorf("%w: %d (len=%d)", ErrIndexOutOfRange, i, len(v.values))
	}

	return v.values[i], nil
}

// SetIndex moves the cursor. It is the single mutation point used by
// UpdateVariables (see Apply) between sweep points.
func (v *Variable) SetIndex(i int) error {
	if i < 0 || i >= len(v.values) {
		return fmt.Errorf("%w: %d (len=%d)", ErrIndexOutOfRange, i, len(v.values))
	}

	v.index = i

	return nil
}

// Clone returns a deep copy sharing no backing array with the original.
func (v *Variable) Clone() *Variable {
	cp := make([]float64, len(v.values))
	copy(cp, v.values)

	return &Variable{name: v.name, unit: v.unit, values: cp, index: v.index}
}
