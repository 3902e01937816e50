package session_test

import (
	"testing"

	"github.com/levelsmith/levelsmith/pkg/session"
)

func TestLogStreamRetainsMessagesAndSetsBanner(t *testing.T) {
	log := session.NewLogStream(0)
	log.Info("loaded map", "path", "/a.bin")
	log.Warn("pack load warning", "detail", "bad yaml")

	msgs := log.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len(Messages()) = %d, want 2", len(msgs))
	}
	text, ok := log.Banner()
	if !ok || text != "pack load warning" {
		t.Fatalf("Banner() = (%q, %v), want (\"pack load warning\", true)", text, ok)
	}

	log.ClearBanner()
	if _, ok := log.Banner(); ok {
		t.Fatalf("banner still set after ClearBanner")
	}
}

func TestLogStreamCapacityTrimsOldestFirst(t *testing.T) {
	log := session.NewLogStream(2)
	log.Info("one")
	log.Info("two")
	log.Info("three")

	msgs := log.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len(Messages()) = %d, want 2", len(msgs))
	}
	if msgs[0].Text != "two" || msgs[1].Text != "three" {
		t.Fatalf("retained messages = %+v, want [two three]", msgs)
	}
}

func TestLogStreamFirstWarningLatchesBannerUntilCleared(t *testing.T) {
	log := session.NewLogStream(0)
	log.Warn("first warning")
	log.Warn("second warning")

	text, _ := log.Banner()
	if text != "first warning" {
		t.Fatalf("Banner() = %q, want the first warning (banner latches to the first unseen message)", text)
	}
}
