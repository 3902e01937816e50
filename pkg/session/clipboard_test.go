package session_test

import (
	"testing"

	"github.com/levelsmith/levelsmith/pkg/session"
)

func TestMemClipboardGetBeforeSetErrors(t *testing.T) {
	c := session.NewMemClipboard()
	if _, err := c.Get(); err == nil {
		t.Fatalf("Get on an empty clipboard did not error")
	}
}

func TestMemClipboardSetThenGetRoundTrips(t *testing.T) {
	c := session.NewMemClipboard()
	if err := c.Set("items: []\n"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	text, err := c.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if text != "items: []\n" {
		t.Fatalf("Get() = %q", text)
	}
}
