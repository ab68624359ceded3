package ferr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfDirect(t *testing.T) {
	err := New(ErrBreakdown, "denominator %s", "collapsed")
	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, ErrBreakdown, kind)
}

type wrapped struct{ err error }

func (w *wrapped) Error() string { return fmt.Sprintf("wrapped: %v", w.err) }
func (w *wrapped) Unwrap() error { return w.err }

func TestKindOfUnwraps(t *testing.T) {
	inner := New(ErrMaxIter, "budget exhausted")
	outer := &wrapped{err: inner}
	kind, ok := KindOf(outer)
	assert.True(t, ok)
	assert.Equal(t, ErrMaxIter, kind)
}

func TestErrorsIsSameKind(t *testing.T) {
	a := New(ErrStagnation, "iteration 5")
	b := New(ErrStagnation, "iteration 9")
	assert.True(t, errors.Is(a, b))

	c := New(ErrDiverge, "iteration 9")
	assert.False(t, errors.Is(a, c))
}
