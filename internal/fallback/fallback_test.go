package fallback

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	derived := 0
	derive := func() int {
		derived++
		return 7
	}

	r := Resolve(3, nil, derive)
	if r.Source() != Authoritative || r.Value() != 3 {
		t.Errorf("Resolve(3, nil) = %v/%d, want authoritative/3", r.Source(), r.Value())
	}
	if derived != 0 {
		t.Errorf("derive ran %d times for an authoritative result", derived)
	}

	r = Resolve(3, errors.New("404"), derive)
	if r.Source() != Derived || r.Value() != 7 {
		t.Errorf("Resolve(3, err) = %v/%d, want derived/7", r.Source(), r.Value())
	}
}

func TestDeriveRunsOnce(t *testing.T) {
	calls := 0
	r := Resolve(0, errors.New("unavailable"), func() int {
		calls++
		return calls
	})
	for i := 0; i < 3; i++ {
		if got := r.Value(); got != 1 {
			t.Errorf("Value() = %d on read %d, want 1", got, i)
		}
	}
	if calls != 1 {
		t.Errorf("derive ran %d times, want 1", calls)
	}
}

func TestZero(t *testing.T) {
	var r Result[string]
	if r.Value() != "" || r.Source() != Authoritative {
		t.Errorf("zero Result = %v/%q", r.Source(), r.Value())
	}
	if From[string](nil).Value() != "" {
		t.Errorf("From(nil).Value() not zero")
	}
}
