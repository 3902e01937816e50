package session

import (
	"context"
	"log/slog"
	"sync"
)

// LogLevel mirrors spec.md §6's Logger collaborator levels.
type LogLevel int

const (
	LevelTrace LogLevel = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelTrace, LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogMessage is one entry of the session's log-message stream, per
// spec.md §7's "dedicated log tab shows the message stream".
type LogMessage struct {
	Level LogLevel
	Text  string
	Args  []any
}

// LogStream is the session's log-message stream and status banner,
// backed by log/slog for the editor's actual process-level logging — the
// in-memory ring is what the log tab renders, the slog handler is what an
// operator's terminal or log aggregator sees. Both the palette loader's
// warnings and render.Logger's per-directive warnings (via
// (*LogStream).Warn, which satisfies render.Logger and action's implicit
// logging needs) land here.
type LogStream struct {
	mu       sync.Mutex
	slog     *slog.Logger
	messages []LogMessage
	cap      int

	bannerText string
	bannerSet  bool
}

// NewLogStream returns a LogStream that retains up to capacity messages
// (0 means unbounded) and forwards everything to slog.Default().
func NewLogStream(capacity int) *LogStream {
	return &LogStream{slog: slog.Default(), cap: capacity}
}

// NewLogStreamWith returns a LogStream forwarding to a caller-supplied
// slog.Logger instead of the process default, for tests or an embedding
// application with its own handler.
func NewLogStreamWith(logger *slog.Logger, capacity int) *LogStream {
	return &LogStream{slog: logger, cap: capacity}
}

func (s *LogStream) append(level LogLevel, msg string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, LogMessage{Level: level, Text: msg, Args: args})
	if s.cap > 0 && len(s.messages) > s.cap {
		s.messages = s.messages[len(s.messages)-s.cap:]
	}
	if level >= LevelWarn && !s.bannerSet {
		s.bannerSet = true
		s.bannerText = msg
	}
	s.slog.Log(context.Background(), level.slogLevel(), msg, args...)
}

// Trace, Debug, Info, Warn, Error append a message at the given level.
func (s *LogStream) Trace(msg string, args ...any) { s.append(LevelTrace, msg, args...) }
func (s *LogStream) Debug(msg string, args ...any) { s.append(LevelDebug, msg, args...) }
func (s *LogStream) Info(msg string, args ...any)  { s.append(LevelInfo, msg, args...) }

// Warn satisfies render.Logger, so a LogStream can be wired directly as a
// render.Context's Log collaborator.
func (s *LogStream) Warn(msg string, args ...any) { s.append(LevelWarn, msg, args...) }
func (s *LogStream) Error(msg string, args ...any) { s.append(LevelError, msg, args...) }

// Messages returns a snapshot of the retained log stream, oldest first.
func (s *LogStream) Messages() []LogMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LogMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Banner returns the first unseen warning/error message and whether a
// banner is currently showing.
func (s *LogStream) Banner() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bannerText, s.bannerSet
}

// ClearBanner dismisses the status banner, per spec.md §7's "cleared by
// opening the log tab".
func (s *LogStream) ClearBanner() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bannerSet = false
	s.bannerText = ""
}
