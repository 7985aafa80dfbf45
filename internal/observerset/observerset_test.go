package observerset

import (
	"context"
	"testing"
	"time"

	"github.com/momentics/hioload-ws/api"
	"github.com/momentics/hioload-ws/fake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttach_RejectsDuplicates(t *testing.T) {
	s := New()
	o := fake.NewObserver()
	assert.True(t, s.Attach(o))
	assert.False(t, s.Attach(o))
	assert.Equal(t, 1, s.Len())
}

func TestFanOutStart_CollectsAllErrorsWithoutShortCircuit(t *testing.T) {
	s := New()
	slow := fake.NewObserver()
	slow.StartDelay = 20 * time.Millisecond
	failFast := fake.NewObserver()
	failFast.StartErr = assertErr("boom-fast")
	failSlow := fake.NewObserver()
	failSlow.StartErr = assertErr("boom-slow")
	failSlow.StartDelay = 20 * time.Millisecond

	s.Attach(slow)
	s.Attach(failFast)
	s.Attach(failSlow)

	errs := s.FanOutStart(context.Background(), fakeOrch{}, fake.NewLogger(), &fake.ErrorHandler{})
	require.Len(t, errs, 2, "both failures must surface even though one observer failed immediately")
	assert.Equal(t, 1, slow.Starts(), "a slow but successful observer is still joined, not abandoned")
}

type fakeOrch struct{}

func (fakeOrch) State() api.State { return api.Started }

type assertErrT string

func (e assertErrT) Error() string { return string(e) }

func assertErr(msg string) error { return assertErrT(msg) }
