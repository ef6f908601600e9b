package native

import (
	"fmt"
	"testing"

	"github.com/skillsenselab/appkit/errors"
)

func TestResolveCachesSuccess(t *testing.T) {
	attempts := 0
	p := NewProxy("haptics", func() (string, error) {
		attempts++
		return "module-ref", nil
	})

	for i := 0; i < 3; i++ {
		res := p.Resolve()
		if !res.Available() {
			t.Fatalf("expected available, got reason %v", res.Reason)
		}
		if res.Ref != "module-ref" {
			t.Fatalf("expected 'module-ref', got %q", res.Ref)
		}
	}

	if attempts != 1 {
		t.Errorf("expected exactly one locate attempt, got %d", attempts)
	}
}

func TestResolveCachesAbsence(t *testing.T) {
	attempts := 0
	p := NewProxy("purchases", func() (string, error) {
		attempts++
		return "", fmt.Errorf("module not linked")
	})

	for i := 0; i < 3; i++ {
		res := p.Resolve()
		if res.Available() {
			t.Fatal("expected unavailable")
		}
	}

	if attempts != 1 {
		t.Errorf("expected exactly one locate attempt, got %d", attempts)
	}
}

func TestIsAvailable(t *testing.T) {
	p := NewProxy("notifications", func() (int, error) { return 7, nil })
	if !p.IsAvailable() {
		t.Error("expected available")
	}

	absent := NewProxy("purchases", func() (int, error) { return 0, fmt.Errorf("missing") })
	if absent.IsAvailable() {
		t.Error("expected unavailable")
	}
}

func TestRequireReturnsTypedError(t *testing.T) {
	p := NewProxy("notifications", func() (int, error) { return 0, fmt.Errorf("missing") })

	_, err := p.Require()
	if err == nil {
		t.Fatal("expected error for absent mandatory capability")
	}
	if !errors.IsCode(err, errors.ErrCodeCapabilityUnavailable) {
		t.Errorf("expected CAPABILITY_UNAVAILABLE, got %v", err)
	}
}

func TestInvalidateForcesReResolution(t *testing.T) {
	attempts := 0
	p := NewProxy("connectivity", func() (string, error) {
		attempts++
		if attempts == 1 {
			return "", fmt.Errorf("transient load failure")
		}
		return "ref", nil
	})

	if p.IsAvailable() {
		t.Fatal("first resolution should fail")
	}
	if p.IsAvailable() {
		t.Fatal("failure should be cached until invalidated")
	}

	p.Invalidate()
	if !p.IsAvailable() {
		t.Fatal("expected availability after invalidate")
	}
	if attempts != 2 {
		t.Errorf("expected 2 locate attempts, got %d", attempts)
	}
}

func TestLocatorPanicBecomesUnavailable(t *testing.T) {
	p := NewProxy("camera", func() (string, error) {
		panic("loader blew up")
	})

	res := p.Resolve()
	if res.Available() {
		t.Fatal("expected unavailable after loader panic")
	}
}
