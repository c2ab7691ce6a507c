package deferred

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestResolve(t *testing.T) {
	d, resolve, _ := New()

	if d.Settled() {
		t.Fatal("new Deferred should not be settled")
	}

	resolve(42)

	v, err := d.Await(context.Background())
	if err != nil {
		t.Fatalf("Await returned error: %v", err)
	}
	if v != 42 {
		t.Errorf("value = %v, want 42", v)
	}
	if !d.Settled() {
		t.Error("Settled() = false after resolve")
	}
}

func TestReject(t *testing.T) {
	d, _, reject := New()
	want := errors.New("boom")
	reject(want)

	_, err := d.Await(context.Background())
	if !errors.Is(err, want) {
		t.Errorf("Await error = %v, want %v", err, want)
	}
}

func TestRejectNilError(t *testing.T) {
	d, _, reject := New()
	reject(nil)

	_, err := d.Await(context.Background())
	if !errors.Is(err, ErrNilError) {
		t.Errorf("Await error = %v, want ErrNilError", err)
	}
}

func TestSettleOnce(t *testing.T) {
	d, resolve, reject := New()
	resolve("first")
	resolve("second")
	reject(errors.New("late"))

	v, err := d.Await(context.Background())
	if err != nil {
		t.Fatalf("Await returned error: %v", err)
	}
	if v != "first" {
		t.Errorf("value = %v, want %q", v, "first")
	}
}

func TestGo(t *testing.T) {
	d := Go(func() (any, error) {
		return "done", nil
	})

	v, err := d.Await(context.Background())
	if err != nil {
		t.Fatalf("Await returned error: %v", err)
	}
	if v != "done" {
		t.Errorf("value = %v, want %q", v, "done")
	}
}

func TestResolvedRejected(t *testing.T) {
	r := Resolved(7)
	v, err := r.Await(context.Background())
	if err != nil || v != 7 {
		t.Errorf("Resolved: got (%v, %v), want (7, nil)", v, err)
	}

	want := errors.New("nope")
	rej := Rejected(want)
	_, err = rej.Await(context.Background())
	if !errors.Is(err, want) {
		t.Errorf("Rejected: error = %v, want %v", err, want)
	}
}

func TestAwaitCancellation(t *testing.T) {
	d, resolve, _ := New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Await(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Await error = %v, want context.Canceled", err)
	}

	// Cancellation must not consume the settlement.
	resolve(1)
	v, err := d.Await(context.Background())
	if err != nil || v != 1 {
		t.Errorf("second Await: got (%v, %v), want (1, nil)", v, err)
	}
}

func TestResult(t *testing.T) {
	d, resolve, _ := New()

	if _, _, ok := d.Result(); ok {
		t.Error("Result ok = true before settlement")
	}

	resolve("x")
	v, err, ok := d.Result()
	if !ok || err != nil || v != "x" {
		t.Errorf("Result = (%v, %v, %v), want (x, nil, true)", v, err, ok)
	}
}

func TestDoneChannel(t *testing.T) {
	d, resolve, _ := New()

	select {
	case <-d.Done():
		t.Fatal("Done closed before settlement")
	default:
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		resolve(nil)
	}()

	select {
	case <-d.Done():
	case <-time.After(time.Second):
		t.Fatal("Done not closed after resolve")
	}
}
