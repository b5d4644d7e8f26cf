package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info", "json").With("component", "store")

	l.Debug("hidden")
	l.Info("store.evict", "count", 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "store.evict", rec["msg"])
	assert.Equal(t, "store", rec["component"])
	assert.EqualValues(t, 2, rec["count"])
}

func TestNewWithWriter_DebugText(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "DEBUG", "")
	l.Debug("store.put", "key", "a")
	assert.Contains(t, buf.String(), "msg=store.put")
	assert.Contains(t, buf.String(), "key=a")
}
