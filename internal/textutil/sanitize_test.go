package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"  My: Mix?":     "My- Mix",
		"a/b\\c":         "a-b-c",
		"":               "",
		"plain_name.mp4": "plain_name.mp4",
	}
	for in, want := range cases {
		if got := SanitizeFileName(in); got != want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEnsureExtension(t *testing.T) {
	cases := []struct {
		name, ext, want string
	}{
		{"output_video", ".mp4", "output_video.mp4"},
		{"clip.MP4", ".mp4", "clip.MP4"},
		{"clip.mov", "mp4", "clip.mov.mp4"},
		{"clip", "", "clip"},
	}
	for _, tc := range cases {
		if got := EnsureExtension(tc.name, tc.ext); got != tc.want {
			t.Errorf("EnsureExtension(%q, %q) = %q, want %q", tc.name, tc.ext, got, tc.want)
		}
	}
}

func TestEscapeConcatPath(t *testing.T) {
	cases := map[string]string{
		"/music/01.mp3":         "'/music/01.mp3'",
		"/music/Don't Stop.mp3": `'/music/Don'\''t Stop.mp3'`,
		"it's 'quoted'.flac":    `'it'\''s '\''quoted'\''.flac'`,
	}
	for in, want := range cases {
		if got := EscapeConcatPath(in); got != want {
			t.Errorf("EscapeConcatPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTernary(t *testing.T) {
	if got := Ternary(true, "hardware", "software"); got != "hardware" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Ternary(false, 1, 2); got != 2 {
		t.Fatalf("unexpected %d", got)
	}
}
