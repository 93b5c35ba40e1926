package poller

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollAppliesSnapshot(t *testing.T) {
	var applied []int
	p := New("test", time.Minute,
		func(context.Context) (int, error) { return 42, nil },
		func(v int) { applied = append(applied, v) },
		nil, nil)

	p.Poll(context.Background())

	require.Len(t, applied, 1)
	assert.Equal(t, 42, applied[0])
}

func TestPollFailureKeepsPriorSnapshot(t *testing.T) {
	var applied []int
	var polled []error
	fetchErr := errors.New("backend unreachable")

	p := New("test", time.Minute,
		func(context.Context) (int, error) { return 0, fetchErr },
		func(v int) { applied = append(applied, v) },
		func(err error) { polled = append(polled, err) },
		nil)

	p.Poll(context.Background())

	assert.Empty(t, applied)
	require.Len(t, polled, 1)
	assert.ErrorIs(t, polled[0], fetchErr)
}

func TestPollDiscardsStaleResponse(t *testing.T) {
	var applied []int
	var p *Poller[int]
	p = New("test", time.Minute,
		func(context.Context) (int, error) {
			// a newer generation appears while this fetch is in flight
			p.Invalidate()
			return 7, nil
		},
		func(v int) { applied = append(applied, v) },
		nil, nil)

	p.Poll(context.Background())

	assert.Empty(t, applied)
}

func TestRunStopsOnCancel(t *testing.T) {
	fetched := make(chan struct{}, 1)
	p := New("test", time.Millisecond,
		func(context.Context) (int, error) {
			select {
			case fetched <- struct{}{}:
			default:
			}
			return 1, nil
		},
		func(int) {}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	select {
	case <-fetched:
	case <-time.After(time.Second):
		t.Fatal("poller never ticked")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancel")
	}
}
