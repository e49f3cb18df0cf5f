package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(prev)
		SetVerbose(false)
	})
	return &buf
}

func TestDebugEnabled(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		verbose bool
		want    bool
	}{
		{"unset", "", false, false},
		{"env set", "1", false, true},
		{"env true", "true", false, true},
		{"verbose flag", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDebug, tt.env)
			SetVerbose(tt.verbose)
			t.Cleanup(func() { SetVerbose(false) })

			assert.Equal(t, tt.want, DebugEnabled())
		})
	}
}

func TestDebugf(t *testing.T) {
	buf := captureOutput(t)

	t.Setenv(EnvDebug, "")
	Debugf("hidden %s\n", "message")
	assert.Empty(t, buf.String())

	t.Setenv(EnvDebug, "1")
	Debugf("loaded %d task(s) for %s\n", 2, "2024-07-16")
	assert.Equal(t, "loaded 2 task(s) for 2024-07-16\n", buf.String())
}

func TestDebugln(t *testing.T) {
	buf := captureOutput(t)
	t.Setenv(EnvDebug, "")

	Debugln("hidden")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debugln("saving", "day")
	assert.Equal(t, "saving day\n", buf.String())
}
