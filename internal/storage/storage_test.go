package storage

import "testing"

func TestPathFromURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain object path",
			raw:  "https://cdn.jobsyde.com/images/abc123_1700000000.png",
			want: "abc123_1700000000.png",
		},
		{
			name: "nested and escaped path",
			raw:  "https://cdn.jobsyde.com/images/uploads/my%20image.png",
			want: "uploads/my image.png",
		},
		{
			name: "foreign host is skipped",
			raw:  "https://example.com/images/abc.png",
			want: "",
		},
		{
			name: "different bucket is skipped",
			raw:  "https://cdn.jobsyde.com/avatars/abc.png",
			want: "",
		},
		{
			name: "prefix with no object",
			raw:  "https://cdn.jobsyde.com/images/",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PathFromURL("https://cdn.jobsyde.com", "images", tt.raw)
			if got != tt.want {
				t.Errorf("PathFromURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
