package htmltext

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips tags",
			in:   "<p>Fully funded <strong>scholarship</strong> in Canada.</p>",
			want: "Fully funded scholarship in Canada.",
		},
		{
			name: "collapses whitespace across blocks",
			in:   "<div>Apply\n   by</div><div>June   2026</div>",
			want: "Apply by June 2026",
		},
		{
			name: "plain text passes through",
			in:   "no markup here",
			want: "no markup here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.in); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	if got := Truncate("abcdefghij", 8); got != "abcde..." {
		t.Errorf("expected abcde..., got %q", got)
	}
	if got := Truncate("abcdef", 3); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
}
