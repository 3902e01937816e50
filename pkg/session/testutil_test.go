package session_test

import (
	"testing"

	"github.com/levelsmith/levelsmith/pkg/levelmap"
	"github.com/levelsmith/levelsmith/pkg/session"
)

// newTestSession returns a session with one open map, one room (80x80px,
// 10x10 tiles), and a selected MapTab.
func newTestSession(t *testing.T) (*session.Session, session.MapID) {
	t.Helper()
	m := levelmap.NewMap("test")
	m.Rooms = append(m.Rooms, levelmap.NewRoom("a-00", levelmap.Rect{X: 0, Y: 0, W: 80, H: 80}))
	data, err := levelmap.Encode(m)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	s := session.New(nil)
	if _, err := s.Apply(session.OpenMap{Path: "", Data: data}); err != nil {
		t.Fatalf("OpenMap: %v", err)
	}
	tab, ok := s.Tabs[s.SelectedTab].(session.MapTab)
	if !ok {
		t.Fatalf("selected tab is not a MapTab: %+v", s.Tabs[s.SelectedTab])
	}
	return s, tab.Map
}
