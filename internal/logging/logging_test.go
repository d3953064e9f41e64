package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false, false)
	log.Info("hidden")
	require.Empty(t, buf.String())
	log.Error(nil, "shown")
	require.Contains(t, buf.String(), "shown")

	buf.Reset()
	log = New(&buf, true, false)
	log.Info("resolved", "ip", "203.0.113.5")
	log.V(1).Info("debug detail")
	require.Contains(t, buf.String(), `"ip":"203.0.113.5"`)
	require.NotContains(t, buf.String(), "debug detail")

	buf.Reset()
	log = New(&buf, false, true)
	log.V(1).Info("debug detail")
	require.Contains(t, buf.String(), "debug detail")
}
