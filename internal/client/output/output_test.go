package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bridgectl/bridgectl/internal/api"

	"github.com/stretchr/testify/assert"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	orig := Stdout
	Stdout = &buf
	defer func() { Stdout = orig }()
	fn()
	return buf.String()
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	orig := Stderr
	Stderr = &buf
	defer func() { Stderr = orig }()
	fn()
	return buf.String()
}

func TestMessageHelpers(t *testing.T) {
	out := captureStderr(t, func() {
		Successf("breakpoints set: %d", 3)
		Infof("connecting")
		Warningf("slow response")
		Errorf("bridge unreachable")
	})

	assert.Contains(t, out, "breakpoints set: 3")
	assert.Contains(t, out, "connecting")
	assert.Contains(t, out, "slow response")
	assert.Contains(t, out, "bridge unreachable")
}

func TestKeyValue(t *testing.T) {
	out := captureStdout(t, func() {
		KeyValue("Mode", "Break")
	})
	assert.Contains(t, out, "Mode")
	assert.Contains(t, out, "Break")
}

func TestTable(t *testing.T) {
	t.Run("columns are aligned", func(t *testing.T) {
		out := captureStdout(t, func() {
			Table([]string{"File", "Line"}, [][]string{
				{"Program.cs", "10"},
				{"W.cs", "2"},
			})
		})

		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		assert.Len(t, lines, 4) // header, separator, two rows
		assert.Contains(t, lines[2], "Program.cs")
		assert.Contains(t, lines[3], "W.cs")
	})

	t.Run("empty headers print nothing", func(t *testing.T) {
		out := captureStdout(t, func() {
			Table(nil, [][]string{{"a"}})
		})
		assert.Empty(t, out)
	})
}

func TestModeBadge(t *testing.T) {
	assert.Contains(t, ModeBadge(api.ModeRun), "Run")
	assert.Contains(t, ModeBadge(api.ModeBreak), "Break")
	assert.Contains(t, ModeBadge(api.ModeDesign), "Design")
	assert.Contains(t, ModeBadge(api.Mode("Odd")), "Odd")
}

func TestVisibleWidth(t *testing.T) {
	assert.Equal(t, 5, visibleWidth("plain"))
	assert.Equal(t, 5, visibleWidth("\x1b[31mplain\x1b[0m"))
}
