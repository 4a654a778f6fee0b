package reveal

import "testing"

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hero", "hero"},
		{"after-scroll", "after-scroll"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"#contact", "_contact"},
		{"path/to/thing", "path_to_thing"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	p := NewPage(800, 600)
	p.Screenshot("a")
	p.Screenshot("b")
	if len(p.screenshotQueue) != 2 {
		t.Fatalf("queue len = %d, want 2", len(p.screenshotQueue))
	}
	if p.screenshotQueue[0] != "a" || p.screenshotQueue[1] != "b" {
		t.Errorf("queue = %v, want [a b]", p.screenshotQueue)
	}
}
