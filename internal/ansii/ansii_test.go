package ansii

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPaint(t *testing.T) {
	got := Paint("goal", Colors.Yellow)
	if got != "\033[33mgoal\033[0m" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestCheckTerminalRejectsFiles(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	err = CheckTerminal(f, 1, 1)
	if err == nil || !strings.Contains(err.Error(), "not a terminal") {
		t.Fatalf("expected a not-a-terminal error, got %v", err)
	}
	if _, _, err := GetTermSize(f); err == nil {
		t.Fatalf("expected no size for a regular file")
	}
}
