package compactor_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/compresr/session-keeper/internal/compactor"
	"github.com/compresr/session-keeper/internal/health"
)

var defaultThresholds = health.Thresholds{MaxSizeKB: 500, MaxLines: 300}

// numbered returns n distinct lines "prefix-0" .. "prefix-(n-1)".
func numbered(prefix string, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("%s-%d", prefix, i)
	}
	return lines
}

// =============================================================================
// RETAIN
// =============================================================================

func TestRetain(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		policy compactor.Policy
		want   []string
	}{
		{
			name:   "prefix and suffix",
			lines:  []string{"s1", "s2", "m1", "m2", "m3", "m4"},
			policy: compactor.Policy{KeepSystemLines: 2, KeepMessages: 2},
			want:   []string{"s1", "s2", "m3", "m4"},
		},
		{
			name:   "fewer lines than prefix keeps all",
			lines:  []string{"a", "b", "c"},
			policy: compactor.Policy{KeepSystemLines: 5, KeepMessages: 50},
			want:   []string{"a", "b", "c"},
		},
		{
			name:   "exactly prefix length",
			lines:  []string{"a", "b"},
			policy: compactor.Policy{KeepSystemLines: 2, KeepMessages: 3},
			want:   []string{"a", "b"},
		},
		{
			name:   "small remainder takes everything after prefix",
			lines:  []string{"s", "m1", "m2"},
			policy: compactor.Policy{KeepSystemLines: 1, KeepMessages: 5},
			want:   []string{"s", "m1", "m2"},
		},
		{
			name:   "remainder equal to suffix window",
			lines:  []string{"s", "m1", "m2"},
			policy: compactor.Policy{KeepSystemLines: 1, KeepMessages: 2},
			want:   []string{"s", "m1", "m2"},
		},
		{
			name:   "no messages kept",
			lines:  []string{"s", "m1", "m2"},
			policy: compactor.Policy{KeepSystemLines: 1, KeepMessages: 0},
			want:   []string{"s"},
		},
		{
			name:   "no system lines kept",
			lines:  []string{"m1", "m2", "m3"},
			policy: compactor.Policy{KeepSystemLines: 0, KeepMessages: 2},
			want:   []string{"m2", "m3"},
		},
		{
			name:   "duplicate across windows collapses to first occurrence",
			lines:  []string{"a", "b", "a", "c"},
			policy: compactor.Policy{KeepSystemLines: 1, KeepMessages: 2},
			want:   []string{"a", "c"},
		},
		{
			name:   "duplicate inside prefix collapses",
			lines:  []string{"x", "x", "y", "z"},
			policy: compactor.Policy{KeepSystemLines: 2, KeepMessages: 1},
			want:   []string{"x", "z"},
		},
		{
			name:   "empty",
			lines:  []string{},
			policy: compactor.Policy{KeepSystemLines: 5, KeepMessages: 100},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compactor.Retain(tt.lines, tt.policy))
		})
	}
}

func TestRetain_SystemPlusMessages(t *testing.T) {
	system := numbered("system", 5)
	messages := numbered("message", 200)
	lines := append(append([]string{}, system...), messages...)

	got := compactor.Retain(lines, compactor.Policy{KeepSystemLines: 5, KeepMessages: 50})

	assert.Len(t, got, 55)
	assert.Equal(t, system, got[:5])
	assert.Equal(t, messages[150:], got[5:])
}

func TestRetain_RetainedLinesComeFromOriginal(t *testing.T) {
	lines := []string{"h", "a", "b", "a", "c", "h", "d", "e"}
	original := make(map[string]bool)
	for _, l := range lines {
		original[l] = true
	}

	for ks := 0; ks <= len(lines)+1; ks++ {
		for km := 0; km <= len(lines)+1; km++ {
			got := compactor.Retain(lines, compactor.Policy{KeepSystemLines: ks, KeepMessages: km})
			assert.LessOrEqual(t, len(got), len(lines))

			seen := make(map[string]bool)
			for _, l := range got {
				assert.True(t, original[l], "ks=%d km=%d introduced %q", ks, km, l)
				assert.False(t, seen[l], "ks=%d km=%d duplicated %q", ks, km, l)
				seen[l] = true
			}
		}
	}
}

func TestRetain_Idempotent(t *testing.T) {
	p := compactor.Policy{KeepSystemLines: 5, KeepMessages: 50}
	lines := append(numbered("system", 5), numbered("message", 200)...)

	once := compactor.Retain(lines, p)
	twice := compactor.Retain(once, p)

	assert.Equal(t, once, twice)
}

// =============================================================================
// NEEDS COMPACTION
// =============================================================================

func TestNeedsCompaction(t *testing.T) {
	p := compactor.Policy{KeepSystemLines: 5, KeepMessages: 50}

	tests := []struct {
		name      string
		sizeBytes int64
		lines     int
		force     bool
		want      bool
	}{
		{"within window", 1024, 55, false, false},
		{"empty", 0, 0, false, false},
		{"over window under thresholds", 12 * 1024, 205, false, true},
		{"over line threshold", 1024, 301, false, true},
		{"over size threshold", 501 * 1024, 10, false, true},
		{"forced", 10, 1, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compactor.NeedsCompaction(tt.sizeBytes, tt.lines, p, defaultThresholds, tt.force))
		})
	}
}

func TestNeedsCompaction_WindowTrimsHealthySession(t *testing.T) {
	p := compactor.Policy{KeepSystemLines: 5, KeepMessages: 50}

	assert.False(t, health.Evaluate(12*1024, 205, defaultThresholds).NeedsCompaction)
	assert.True(t, compactor.NeedsCompaction(12*1024, 205, p, defaultThresholds, false))
}

func TestPolicy_Window(t *testing.T) {
	assert.Equal(t, 105, compactor.Policy{KeepSystemLines: 5, KeepMessages: 100}.Window())
}
