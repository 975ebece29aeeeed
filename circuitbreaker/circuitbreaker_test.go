package circuitbreaker

import (
	"testing"
	"time"
)

func TestStartsClosed(t *testing.T) {
	cb := New(Config{Name: "test"})

	if cb.State() != StateClosed {
		t.Errorf("Expected CLOSED, got %v", cb.State())
	}
	if !cb.Allow() {
		t.Error("Closed circuit must allow requests")
	}
}

func TestOpensAfterThreshold(t *testing.T) {
	cb := New(Config{Name: "test", Threshold: 3, Cooldown: time.Minute})

	cb.RecordFailure()
	cb.RecordFailure()
	if cb.State() != StateClosed {
		t.Fatal("Circuit should stay closed below the threshold")
	}

	cb.RecordFailure()
	if cb.State() != StateOpen {
		t.Fatalf("Expected OPEN after 3 failures, got %v", cb.State())
	}
	if cb.Allow() {
		t.Error("Open circuit must block requests")
	}
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := New(Config{Name: "test", Threshold: 3, Cooldown: time.Minute})

	cb.RecordFailure()
	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	cb.RecordFailure()

	if cb.State() != StateClosed {
		t.Errorf("Non-consecutive failures must not open the circuit, got %v", cb.State())
	}
	if cb.Failures() != 2 {
		t.Errorf("Expected 2 consecutive failures, got %d", cb.Failures())
	}
}

func TestHalfOpenAfterCooldown(t *testing.T) {
	cb := New(Config{Name: "test", Threshold: 1, Cooldown: 10 * time.Millisecond})

	cb.RecordFailure()
	if cb.Allow() {
		t.Fatal("Circuit should be open immediately after tripping")
	}

	time.Sleep(20 * time.Millisecond)

	if !cb.Allow() {
		t.Fatal("Expected the test request through after cooldown")
	}
	if cb.State() != StateHalfOpen {
		t.Errorf("Expected HALF-OPEN, got %v", cb.State())
	}
	if cb.Allow() {
		t.Error("Only one test request is allowed in half-open")
	}
}

func TestHalfOpenSuccessCloses(t *testing.T) {
	cb := New(Config{Name: "test", Threshold: 1, Cooldown: 10 * time.Millisecond})

	cb.RecordFailure()
	time.Sleep(20 * time.Millisecond)
	cb.Allow()
	cb.RecordSuccess()

	if cb.State() != StateClosed {
		t.Errorf("Expected CLOSED after successful test request, got %v", cb.State())
	}
	if cb.Failures() != 0 {
		t.Errorf("Expected failure count reset, got %d", cb.Failures())
	}
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb := New(Config{Name: "test", Threshold: 1, Cooldown: 10 * time.Millisecond})

	cb.RecordFailure()
	time.Sleep(20 * time.Millisecond)
	cb.Allow()
	cb.RecordFailure()

	if cb.State() != StateOpen {
		t.Errorf("Expected OPEN after failed test request, got %v", cb.State())
	}
}

func TestReset(t *testing.T) {
	cb := New(Config{Name: "test", Threshold: 1, Cooldown: time.Hour})

	cb.RecordFailure()
	if !cb.IsOpen() {
		t.Fatal("Circuit should be open")
	}

	cb.Reset()
	if cb.State() != StateClosed || cb.Failures() != 0 {
		t.Errorf("Expected a clean closed circuit after reset, got %v / %d failures",
			cb.State(), cb.Failures())
	}
}

func TestDefaults(t *testing.T) {
	cb := New(Config{})

	for i := 0; i < 4; i++ {
		cb.RecordFailure()
	}
	if cb.State() != StateClosed {
		t.Error("Default threshold should be 5")
	}
	cb.RecordFailure()
	if cb.State() != StateOpen {
		t.Error("Expected OPEN at the default threshold")
	}
}
