package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary_Markdown(t *testing.T) {
	printed := 2
	s := Summary{
		Trace:    "fibo",
		Events:   12,
		Sink:     "file",
		Location: "out",
		Automaton: &AutomatonSummary{
			Name: "nfait", States: 5, Letters: 1, Finals: 2, Accessible: 5, CoAccessible: 3,
		},
		Paths:     &TraceSummary{Emitted: 4},
		Nodes:     &printed,
		Artifacts: []string{"nfait.json", "trace1.txt"},
	}

	md := s.Markdown()
	assert.Contains(t, md, "# Replay of `fibo`")
	assert.Contains(t, md, "12 events replayed")
	assert.Contains(t, md, "| 5 | 1 | 2 | 5 | 3 |")
	assert.Contains(t, md, "- emitted: 4")
	assert.Contains(t, md, "- printed: 2")
	assert.Contains(t, md, "- `trace1.txt`")
}

func TestSummary_MarkdownOmitsMissingSections(t *testing.T) {
	md := Summary{Trace: "t"}.Markdown()
	assert.NotContains(t, md, "## Automaton")
	assert.NotContains(t, md, "## Paths")
	assert.NotContains(t, md, "## Nodes")
	assert.NotContains(t, md, "## Artifacts")
}

func TestStatusLines(t *testing.T) {
	var buf bytes.Buffer
	Success(&buf, "done in %s", "1s")
	Failure(&buf, "failed: %v", "boom")
	PrintBanner(&buf)

	out := buf.String()
	assert.Contains(t, out, "done in 1s")
	assert.Contains(t, out, "failed: boom")
}

func TestPlain(t *testing.T) {
	out, err := Plain("# x")
	assert.NoError(t, err)
	assert.Equal(t, "# x", out)
}
