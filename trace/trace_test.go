package trace

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestTraceCollectsEntries(t *testing.T) {
	tr := New(zerolog.Nop())
	tr.Begin("decompiling %s", "Main")
	tr.Warnf("IL_0002", "unknown kind for %s", "local0")
	tr.Errorf("IL_0004", "pop on empty stack")
	tr.Complete("done")

	entries := tr.Entries()
	require.Len(t, entries, 4)
	require.Equal(t, 4, tr.Len())
	require.Equal(t, OperationInProgress, entries[0].Severity)
	require.Equal(t, "decompiling Main", entries[0].Message)
	require.Equal(t, 1, tr.Count(Error))
	require.Equal(t, 1, tr.Count(Warning))
	require.Equal(t, "[error] IL_0004: pop on empty stack", entries[2].String())
	require.Equal(t, "[completed] done", entries[3].String())

	entries[0].Message = "changed"
	require.Equal(t, "decompiling Main", tr.Entries()[0].Message)
}

func TestTraceMirrorsToLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)
	tr := New(logger)
	tr.Begin("hidden at info level")
	tr.Errorf("IL_0001", "bad region")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "error", line["level"])
	require.Equal(t, "IL_0001", line["label"])
	require.Equal(t, "bad region", line["message"])
}

func TestSeverityMarshalText(t *testing.T) {
	data, err := json.Marshal(Entry{Message: "m", Severity: Warning})
	require.NoError(t, err)
	require.JSONEq(t, `{"message":"m","severity":"warning"}`, string(data))
}

func TestSeverityUnmarshalText(t *testing.T) {
	var e Entry
	require.NoError(t, json.Unmarshal([]byte(`{"message":"m","severity":"completed","label":"IL_0001"}`), &e))
	require.Equal(t, Entry{Message: "m", Severity: OperationCompleted, Label: "IL_0001"}, e)

	require.Error(t, json.Unmarshal([]byte(`{"severity":"loud"}`), &e))
}
