package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventDecoding(t *testing.T) {
	t.Run("connected event", func(t *testing.T) {
		raw := `{"type":"connected","connectionId":"conn-42"}`

		var ev Event
		err := json.Unmarshal([]byte(raw), &ev)
		require.NoError(t, err)

		assert.Equal(t, EventConnected, ev.Type)
		assert.Equal(t, "conn-42", ev.ConnectionID)
		assert.Nil(t, ev.Snapshot)
	})

	t.Run("state change with break snapshot", func(t *testing.T) {
		raw := `{
			"type": "stateChange",
			"snapshot": {
				"mode": "Break",
				"file": "C:\\Code\\Program.cs",
				"line": 42,
				"exception": "NullReferenceException",
				"locals": {},
				"stack": ["Program.Main", "Worker.Run"]
			}
		}`

		var ev Event
		err := json.Unmarshal([]byte(raw), &ev)
		require.NoError(t, err)

		require.NotNil(t, ev.Snapshot)
		assert.True(t, ev.Snapshot.IsBreak())
		assert.True(t, ev.Snapshot.HasException())
		assert.Empty(t, ev.Snapshot.Locals)
		assert.Len(t, ev.Snapshot.Stack, 2)
	})

	t.Run("pong event", func(t *testing.T) {
		var ev Event
		err := json.Unmarshal([]byte(`{"type":"pong"}`), &ev)
		require.NoError(t, err)
		assert.Equal(t, EventPong, ev.Type)
	})

	t.Run("run snapshot omits break-only fields", func(t *testing.T) {
		snap := Snapshot{Mode: ModeRun}
		data, err := json.Marshal(snap)
		require.NoError(t, err)

		assert.NotContains(t, string(data), "exception")
		assert.NotContains(t, string(data), "locals")
		assert.NotContains(t, string(data), "file")
	})
}

func TestAverageDurationMs(t *testing.T) {
	t.Run("empty logs", func(t *testing.T) {
		assert.Zero(t, AverageDurationMs(nil))
	})

	t.Run("mean of durations", func(t *testing.T) {
		logs := []RequestLog{
			{DurationMs: 10},
			{DurationMs: 20},
			{DurationMs: 30},
		}
		assert.InDelta(t, 20.0, AverageDurationMs(logs), 0.001)
	})
}

func TestCommandConstructors(t *testing.T) {
	bp := SetBreakpoint("C:\\Code\\Program.cs", 10)
	assert.Equal(t, ActionSetBreakpoint, bp.Action)
	assert.Equal(t, 10, bp.Line)

	data, err := json.Marshal(Start())
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"start"}`, string(data))
}
