package ui

import (
	"strings"
	"testing"
)

func TestLayoutDimensions(t *testing.T) {
	l := NewLayout(100, 30)
	if l.ContentHeight() != 28 {
		t.Errorf("ContentHeight = %d, want 28", l.ContentHeight())
	}
	if !l.HasSide() || l.MainWidth() != 100-SideWidth {
		t.Errorf("wide terminal: HasSide=%v MainWidth=%d", l.HasSide(), l.MainWidth())
	}

	narrow := NewLayout(60, 20)
	if narrow.HasSide() || narrow.MainWidth() != 60 {
		t.Errorf("narrow terminal: HasSide=%v MainWidth=%d", narrow.HasSide(), narrow.MainWidth())
	}
	if got := narrow.RenderColumns("main", "side"); got != "main" {
		t.Errorf("narrow RenderColumns = %q", got)
	}
}

func TestRenderStatusBarIncludesToast(t *testing.T) {
	l := NewLayout(80, 24)
	out := l.RenderStatusBar("Task added successfully!", "q quit")
	if !strings.Contains(out, "Task added successfully!") || !strings.Contains(out, "q quit") {
		t.Errorf("status bar missing content: %q", out)
	}
}
