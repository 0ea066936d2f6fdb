package logsvc

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/lms/core"
)

func TestRollbarLogger(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		wantDebug bool
	}{
		{name: "info level", debug: false, wantDebug: false},
		{name: "debug level", debug: true, wantDebug: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			logger := NewRollbarLogger(NewStdLogger("TEST", buf, tt.debug), &core.Config{Env: "TEST"})

			logger.Debug("debug message")
			logger.Info("info message", map[string]interface{}{"teachers": 2})
			logger.Error("error message", errors.New("boom"))

			out := buf.String()
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug message")))
			assert.Contains(t, out, "info message map[teachers:2]")
			assert.Contains(t, out, "error message boom")
			assert.Contains(t, out, "TEST")
		})
	}
}
