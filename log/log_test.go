package log

import (
	"bytes"
	"os"
	"testing"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		Verbose = false
		IndentationLevel = 0
	})
	return &buf
}

func TestLogFormatting(t *testing.T) {
	buf := captureOutput(t)

	IndentationLevel = 1
	Log("Project '%s':\n", ":app")
	if buf.String() != "  Project ':app':\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}

	buf.Reset()
	IndentationLevel = 0
	Warning("careful\n")
	if buf.String() != "\033[33mWarning: \033[0mcareful\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}

	buf.Reset()
	Success("done\n")
	if buf.String() != "\033[32mSuccess: \033[0mdone\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestDebugRequiresVerbose(t *testing.T) {
	buf := captureOutput(t)

	Debug("hidden\n")
	if buf.Len() != 0 {
		t.Fatalf("unexpected output %q", buf.String())
	}

	Verbose = true
	Debug("shown\n")
	if buf.String() != "\033[36mDebug: \033[0mshown\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestErrorFormatting(t *testing.T) {
	buf := captureOutput(t)

	Error("bad %d\n", 1)
	if buf.String() != "\033[31mError: \033[0mbad 1\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
