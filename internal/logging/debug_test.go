package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_TopicFiltering(t *testing.T) {
	enabledTopics = map[string]bool{"sma": true}

	assert.True(t, New("sma").Enabled(), "enabled topic should produce an enabled logger")
	assert.False(t, New("vol").Enabled(), "other topics should stay disabled")
}

func TestNew_Wildcard(t *testing.T) {
	enabledTopics = map[string]bool{"*": true}

	assert.True(t, New("anything").Enabled())
	assert.True(t, New("engine").Enabled())
}

func TestNew_NoTopics(t *testing.T) {
	enabledTopics = map[string]bool{}

	assert.False(t, New("sma").Enabled())
}

func BenchmarkLogger_Disabled(b *testing.B) {
	enabledTopics = map[string]bool{}
	log := New("bench")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Debug("tick", "close", 101.5, "index", i)
	}
}
