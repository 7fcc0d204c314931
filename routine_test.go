package desim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutine_StartReturnsImmediateResult(t *testing.T) {
	r := newRoutine(func(p *Process) (any, error) {
		return 7, nil
	})

	result := r.start(nil)
	require.True(t, result.done)
	assert.Equal(t, 7, result.value)
	assert.NoError(t, result.err)
}

func TestRoutine_YieldAndResume(t *testing.T) {
	r := newRoutine(func(p *Process) (any, error) {
		v, err := p.routine.yield(nil)
		if err != nil {
			return nil, err
		}
		return v, nil
	})

	first := r.start(&Process{routine: r})
	require.False(t, first.done, "expected the routine to yield before finishing")

	final := r.resume("resumed")
	require.True(t, final.done)
	assert.Equal(t, "resumed", final.value)
}

func TestRoutine_ThrowIntoPropagatesAsError(t *testing.T) {
	boom := errValueForTest{"boom"}
	r := newRoutine(func(p *Process) (any, error) {
		_, err := p.routine.yield(nil)
		return nil, err
	})

	first := r.start(&Process{routine: r})
	require.False(t, first.done, "expected the routine to yield before finishing")

	final := r.throwInto(boom)
	require.True(t, final.done)
	assert.Equal(t, boom, final.err)
}

type errValueForTest struct{ msg string }

func (e errValueForTest) Error() string { return e.msg }
