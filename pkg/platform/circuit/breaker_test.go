package circuit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreakerInitialState(t *testing.T) {
	b := New("kyc-provider")
	assert.False(t, b.IsOpen())
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "kyc-provider", b.Name())
	assert.Equal(t, "closed", b.State().String())
}

// outcome is one recorded call: true for success.
type outcome bool

const (
	ok   outcome = true
	fail outcome = false
)

func TestBreakerTransitions(t *testing.T) {
	tests := []struct {
		name      string
		opts      []Option
		calls     []outcome
		wantOpen  bool
		lastOpen  bool
		lastClose bool
		degraded  bool
	}{
		{
			name:     "failures below threshold keep it closed",
			opts:     []Option{WithFailureThreshold(3)},
			calls:    []outcome{fail, fail},
			wantOpen: false,
		},
		{
			name:     "threshold failure opens",
			opts:     []Option{WithFailureThreshold(3)},
			calls:    []outcome{fail, fail, fail},
			wantOpen: true, lastOpen: true, degraded: true,
		},
		{
			name:     "success clears the failure streak",
			opts:     []Option{WithFailureThreshold(3)},
			calls:    []outcome{fail, fail, ok, fail, fail},
			wantOpen: false,
		},
		{
			name:     "failure while open reports degraded without a new transition",
			opts:     []Option{WithFailureThreshold(1)},
			calls:    []outcome{fail, fail},
			wantOpen: true, degraded: true,
		},
		{
			name:     "one success is not enough to close",
			opts:     []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			calls:    []outcome{fail, ok},
			wantOpen: true,
		},
		{
			name:     "success threshold closes",
			opts:     []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			calls:    []outcome{fail, ok, ok},
			wantOpen: false, lastClose: true,
		},
		{
			name:     "failure while half-way restarts the success streak",
			opts:     []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			calls:    []outcome{fail, ok, fail, ok},
			wantOpen: true,
		},
		{
			name:     "non-positive thresholds keep defaults",
			opts:     []Option{WithFailureThreshold(0), WithSuccessThreshold(-1)},
			calls:    []outcome{fail, fail, fail, fail},
			wantOpen: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("kyc-provider", tt.opts...)
			var (
				flag   bool
				change StateChange
			)
			for _, c := range tt.calls {
				if c == ok {
					flag, change = b.RecordSuccess()
					continue
				}
				flag, change = b.RecordFailure()
			}
			last := tt.calls[len(tt.calls)-1]
			assert.Equal(t, tt.wantOpen, b.IsOpen())
			assert.Equal(t, tt.lastOpen, change.Opened)
			assert.Equal(t, tt.lastClose, change.Closed)
			if last == fail {
				assert.Equal(t, tt.degraded, flag)
			}
		})
	}
}

func TestBreakerDefaultThresholds(t *testing.T) {
	b := New("kyc-provider")
	for range 4 {
		b.RecordFailure()
	}
	assert.False(t, b.IsOpen())
	_, change := b.RecordFailure()
	assert.True(t, change.Opened)
	assert.Equal(t, "open", b.State().String())

	for range 2 {
		b.RecordSuccess()
	}
	assert.True(t, b.IsOpen())
	_, change = b.RecordSuccess()
	assert.True(t, change.Closed)
}

func TestBreakerReset(t *testing.T) {
	b := New("kyc-provider", WithFailureThreshold(1))
	b.RecordFailure()
	assert.True(t, b.IsOpen())

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	degraded, _ := b.RecordFailure()
	assert.True(t, degraded, "counters were cleared, so one failure reopens at threshold 1")
}

func TestBreakerConcurrentFailuresOpenOnce(t *testing.T) {
	b := New("kyc-provider", WithFailureThreshold(10))
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		opened int
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, change := b.RecordFailure(); change.Opened {
				mu.Lock()
				opened++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, opened)
	assert.True(t, b.IsOpen())
}
