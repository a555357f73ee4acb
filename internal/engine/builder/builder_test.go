package builder_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/orcdev/internal/core/domain"
	"go.trai.ch/orcdev/internal/engine/builder"
	"go.trai.ch/zerr"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

type executorFunc func(ctx context.Context, target domain.Target, stdout, stderr io.Writer) error

func (f executorFunc) Execute(ctx context.Context, target domain.Target, stdout, stderr io.Writer) error {
	return f(ctx, target, stdout, stderr)
}

func newBuilder(exec executorFunc) *builder.Builder {
	target := domain.Target{Name: "library", Dir: ".", Command: []string{"cargo", "build"}}
	return builder.New(target, exec, nopLogger{}).WithOutput(io.Discard, io.Discard)
}

func TestRequest_Success(t *testing.T) {
	b := newBuilder(func(context.Context, domain.Target, io.Writer, io.Writer) error {
		return nil
	})
	assert.Equal(t, domain.OutcomeSucceeded, b.Request(context.Background()))
}

func TestRequest_Failure(t *testing.T) {
	b := newBuilder(func(context.Context, domain.Target, io.Writer, io.Writer) error {
		return zerr.New("exit status 101")
	})
	assert.Equal(t, domain.OutcomeFailed, b.Request(context.Background()))
}

func TestRequest_SupersedesInFlightBuild(t *testing.T) {
	started := make(chan struct{})
	var firstOnce sync.Once
	b := newBuilder(func(ctx context.Context, _ domain.Target, _, _ io.Writer) error {
		firstCall := false
		firstOnce.Do(func() { firstCall = true })
		if !firstCall {
			return nil
		}
		// The first invocation runs until its context is invalidated.
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	first := make(chan domain.Outcome, 1)
	go func() { first <- b.Request(context.Background()) }()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("first build never started")
	}

	assert.Equal(t, domain.OutcomeSucceeded, b.Request(context.Background()))

	select {
	case outcome := <-first:
		assert.Equal(t, domain.OutcomeSuperseded, outcome)
	case <-time.After(5 * time.Second):
		t.Fatal("first build never resolved")
	}
}

func TestRequest_CancelledExitZeroIsSuperseded(t *testing.T) {
	// A process can win the race and exit zero after its build was already
	// invalidated; the outcome must still be superseded so nothing chains.
	b := newBuilder(func(ctx context.Context, _ domain.Target, _, _ io.Writer) error {
		<-ctx.Done()
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan domain.Outcome, 1)
	go func() { done <- b.Request(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case outcome := <-done:
		assert.Equal(t, domain.OutcomeSuperseded, outcome)
	case <-time.After(5 * time.Second):
		t.Fatal("build never resolved")
	}
}

func TestShutdown_CancelsInFlightBuild(t *testing.T) {
	started := make(chan struct{})
	b := newBuilder(func(ctx context.Context, _ domain.Target, _, _ io.Writer) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	done := make(chan domain.Outcome, 1)
	go func() { done <- b.Request(context.Background()) }()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("build never started")
	}

	b.Shutdown()

	select {
	case outcome := <-done:
		assert.Equal(t, domain.OutcomeSuperseded, outcome)
	case <-time.After(5 * time.Second):
		t.Fatal("build never resolved")
	}
}

func TestRequest_RapidSequenceLeavesOneWinner(t *testing.T) {
	var mu sync.Mutex
	completed := 0
	b := newBuilder(func(ctx context.Context, _ domain.Target, _, _ io.Writer) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(250 * time.Millisecond):
		}
		mu.Lock()
		completed++
		mu.Unlock()
		return nil
	})

	const requests = 5
	outcomes := make(chan domain.Outcome, requests)
	var wg sync.WaitGroup
	for range requests {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes <- b.Request(context.Background())
		}()
		time.Sleep(10 * time.Millisecond)
	}
	wg.Wait()
	close(outcomes)

	succeeded := 0
	for outcome := range outcomes {
		require.NotEqual(t, domain.OutcomeFailed, outcome)
		if outcome == domain.OutcomeSucceeded {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
	mu.Lock()
	assert.Equal(t, 1, completed)
	mu.Unlock()
}
