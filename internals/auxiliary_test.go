package internals

import (
	"errors"
	"os"
	"testing"
)

func TestContains(t *testing.T) {
	set := []string{"node_modules", ".git", "vendor"}
	if !contains(set, ".git") {
		t.Errorf("expected contains(set, %q) = true", ".git")
	}
	if contains(set, "missing") {
		t.Errorf("expected contains(set, %q) = false", "missing")
	}
	if contains(nil, "anything") {
		t.Errorf("expected contains(nil, ...) = false")
	}
}

func TestIsPermissionError(t *testing.T) {
	if !isPermissionError(os.ErrPermission) {
		t.Errorf("expected isPermissionError(os.ErrPermission) = true")
	}
	if isPermissionError(errors.New("boom")) {
		t.Errorf("expected isPermissionError(other) = false")
	}
	wrapped := &os.PathError{Op: "open", Path: "/root/secret", Err: os.ErrPermission}
	if !isPermissionError(wrapped) {
		t.Errorf("expected isPermissionError to unwrap *os.PathError")
	}
}
