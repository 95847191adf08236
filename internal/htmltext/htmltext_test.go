package htmltext

import "testing"

func TestStrip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"Great host!<br/>Would stay again", "Great host! Would stay again"},
		{"<p>Clean</p><p>Quiet</p>", "Clean Quiet"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"<script>alert(1)</script>nice", "nice"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Strip(tt.in); got != tt.want {
			t.Errorf("Strip(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
