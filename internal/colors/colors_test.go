package colors

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() { SetOutput(nil, nil) })
	return &out, &errOut
}

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Debug(msg string, args ...any) { r.lines = append(r.lines, "debug:"+msg) }
func (r *recordingLogger) Info(msg string, args ...any)  { r.lines = append(r.lines, "info:"+msg) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.lines = append(r.lines, "warn:"+msg) }
func (r *recordingLogger) Error(msg string, args ...any) { r.lines = append(r.lines, "error:"+msg) }

func TestError(t *testing.T) {
	_, errOut := captureOutput(t)
	Error("something", "went wrong")

	assert.Contains(t, errOut.String(), "Error:")
	assert.Contains(t, errOut.String(), "something went wrong")
	assert.Contains(t, errOut.String(), Red)
}

func TestSuccessAndInfo(t *testing.T) {
	out, _ := captureOutput(t)
	Success("operation completed")
	Info("just so you know")

	assert.Contains(t, out.String(), checkmark)
	assert.Contains(t, out.String(), "operation completed")
	assert.Contains(t, out.String(), Green)
	assert.Contains(t, out.String(), Blue+"just so you know")
}

func TestWarning(t *testing.T) {
	_, errOut := captureOutput(t)
	Warning("careful")
	assert.Contains(t, errOut.String(), "Warning:")
	assert.Contains(t, errOut.String(), Yellow)
}

func TestDebugRespectsFlag(t *testing.T) {
	_, errOut := captureOutput(t)
	prev := debugEnabled
	t.Cleanup(func() { SetDebug(prev) })

	SetDebug(false)
	Debug("hidden")
	assert.Empty(t, errOut.String())

	SetDebug(true)
	Debug("shown")
	assert.Contains(t, errOut.String(), "Debug:")
	assert.Contains(t, errOut.String(), "shown")
}

func TestMirrorsToLogger(t *testing.T) {
	captureOutput(t)
	rec := &recordingLogger{}
	SetLogger(rec)
	t.Cleanup(func() { SetLogger(nil) })

	Error("e")
	Warning("w")
	Info("i")
	Success("s")

	assert.Equal(t, []string{"error:e", "warn:w", "info:i", "info:s"}, rec.lines)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriteFailureReportedOnce(t *testing.T) {
	var errOut bytes.Buffer
	SetOutput(failingWriter{}, &errOut)
	t.Cleanup(func() { SetOutput(nil, nil) })

	Info("lost")
	assert.Contains(t, errOut.String(), "failed to print info message")
}
