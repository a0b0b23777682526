package tenant

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"acme", "acme"},
		{" acme ", "acme"},
		{"/acme", "acme"},
		{"/acme/projects", "acme"},
		{"acme/projects/7", "acme"},
		{"https://app.example.com/acme?tab=files", "acme"},
		{"http://localhost:3000/tenant_2/#chat", "tenant_2"},
		{"/big-co", "big-co"},
	}
	for _, tc := range cases {
		got, err := Resolve(tc.in)
		if err != nil {
			t.Errorf("Resolve(%q) = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Resolve(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolveInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"/",
		"https://app.example.com/",
		"/-acme",
		"/ac me",
		"/acme.corp",
		strings.Repeat("a", MaxLen+1),
	} {
		if _, err := Resolve(in); !errors.Is(err, ErrInvalidTenant) {
			t.Errorf("Resolve(%q) error = %v, want ErrInvalidTenant", in, err)
		}
	}
}
