package homedir

import (
	"path/filepath"
	"testing"
)

func TestJoin(t *testing.T) {
	t.Setenv("HOME", "/home/ada")
	got, err := Join(".worksync.yaml")
	if err != nil {
		t.Fatalf("Join() = %v", err)
	}
	if want := filepath.Join("/home/ada", ".worksync.yaml"); got != want {
		t.Errorf("Join() = %q, want %q", got, want)
	}
}
