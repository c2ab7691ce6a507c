package routetree

import (
	"context"
	"errors"
	"testing"
)

func TestLazyInvokesOnCall(t *testing.T) {
	calls := 0
	loader := Lazy(func(ctx context.Context) (*Module, error) {
		calls++
		return &Module{Component: func() {}}, nil
	})

	if calls != 0 {
		t.Fatal("producer invoked at construction")
	}

	res, err := loader(context.Background())
	if err != nil {
		t.Fatalf("loader returned error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if !res.HasComponent {
		t.Error("HasComponent should be set")
	}

	// A loader may be called more than once; deduplication is the caller's job.
	if _, err := loader(context.Background()); err != nil {
		t.Fatalf("second call returned error: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestLazyPresenceFlags(t *testing.T) {
	loader := Lazy(producerOf(&Module{
		Loader: func(ctx context.Context, params map[string]string) (map[string]any, error) {
			return nil, nil
		},
	}))

	res, err := loader(context.Background())
	if err != nil {
		t.Fatalf("loader returned error: %v", err)
	}

	if !res.HasLoader {
		t.Error("HasLoader should be set")
	}
	if res.HasComponent || res.HasErrorBoundary || res.HasAction {
		t.Errorf("absent exports should not be present: %+v", res)
	}
}

func TestLazyProducerFailure(t *testing.T) {
	want := errors.New("module fetch failed")
	loader := Lazy(func(ctx context.Context) (*Module, error) {
		return nil, want
	})

	_, err := loader(context.Background())
	if !errors.Is(err, want) {
		t.Errorf("error = %v, want %v", err, want)
	}
}

func TestApplyModuleMergesPresentFieldsOnly(t *testing.T) {
	existingBoundary := func() {}
	node := &Node{
		ID:            "0-1",
		ErrorBoundary: existingBoundary,
		Lazy:          Lazy(producerOf(&Module{})),
	}

	component := func() {}
	node.ApplyModule(LazyResult{
		Component:    component,
		HasComponent: true,
	})

	if node.Component == nil {
		t.Error("present Component should be applied")
	}
	// The module exported no boundary; prior state survives.
	if node.ErrorBoundary == nil {
		t.Error("absent ErrorBoundary must not overwrite prior state")
	}
	if node.Lazy != nil {
		t.Error("ApplyModule should clear the lazy marker")
	}
}

func TestLazyNilModule(t *testing.T) {
	loader := Lazy(producerOf(nil))
	res, err := loader(context.Background())
	if err != nil {
		t.Fatalf("loader returned error: %v", err)
	}
	if res.HasComponent || res.HasErrorBoundary || res.HasLoader || res.HasAction {
		t.Errorf("nil module should yield an empty result: %+v", res)
	}
}
