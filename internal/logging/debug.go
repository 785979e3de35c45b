package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is a topic-scoped debug logger. Disabled topics cost a single bool
// check per call, so indicator hot loops can log freely.
type Logger struct {
	topic   string
	enabled bool
}

var enabledTopics = map[string]bool{}

func init() {
	// DEBUG_TOPICS=sma,vol,cross,sizer,engine selects topics;
	// DEBUG_TOPICS=all enables everything.
	raw := os.Getenv("DEBUG_TOPICS")
	if raw == "" {
		return
	}

	if raw == "all" {
		enabledTopics["*"] = true
	} else {
		for _, topic := range strings.Split(raw, ",") {
			if topic = strings.TrimSpace(topic); topic != "" {
				enabledTopics[topic] = true
			}
		}
	}

	if len(enabledTopics) > 0 {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		slog.SetDefault(slog.New(handler))
	}
}

// New returns a logger for the given topic.
// Usage: var smaLog = logging.New("sma")
func New(topic string) *Logger {
	return &Logger{
		topic:   topic,
		enabled: enabledTopics["*"] || enabledTopics[topic],
	}
}

func (l *Logger) Debug(msg string, args ...any) {
	if !l.enabled {
		return
	}
	slog.Debug(msg, append([]any{"topic", l.topic}, args...)...)
}

func (l *Logger) Info(msg string, args ...any) {
	if !l.enabled {
		return
	}
	slog.Info(msg, append([]any{"topic", l.topic}, args...)...)
}

// Enabled reports whether this topic is active, for guarding expensive
// log argument construction.
func (l *Logger) Enabled() bool {
	return l.enabled
}
