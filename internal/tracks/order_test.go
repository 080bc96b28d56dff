package tracks

import (
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestOrderExample(t *testing.T) {
	got := Order([]string{"10.mp3", "2.mp3", "abc.mp3", "1_intro.mp3"})
	want := []string{"1_intro.mp3", "2.mp3", "10.mp3", "abc.mp3"}
	if !slices.Equal(got, want) {
		t.Fatalf("Order = %v, want %v", got, want)
	}
}

func TestOrderIsIdempotent(t *testing.T) {
	inputs := [][]string{
		{"b.mp3", "a.mp3", "03 - three.flac", "track 2.wav", "01.mp3", "1.mp3"},
		{"Disc 2 - 05.mp3", "Disc 1 - 07.mp3", "10 intro.mp3"},
		{},
	}
	for _, in := range inputs {
		once := Order(in)
		twice := Order(once)
		if !slices.Equal(once, twice) {
			t.Fatalf("Order not idempotent: %v then %v", once, twice)
		}
	}
}

func TestOrderIsStableForTies(t *testing.T) {
	in := []string{"/b/01.mp3", "zeta.mp3", "/a/1.flac", "alpha.mp3", "001.wav"}
	got := Order(in)
	want := []string{"/b/01.mp3", "/a/1.flac", "001.wav", "zeta.mp3", "alpha.mp3"}
	if !slices.Equal(got, want) {
		t.Fatalf("Order = %v, want %v", got, want)
	}
}

func TestOrderDoesNotMutateInput(t *testing.T) {
	in := []string{"2.mp3", "1.mp3"}
	_ = Order(in)
	if in[0] != "2.mp3" {
		t.Fatalf("input mutated: %v", in)
	}
}

func TestKeyFor(t *testing.T) {
	cases := []struct {
		name string
		want SortKey
	}{
		{"007.mp3", SortKey{Value: 7, Numbered: true}},
		{"12-03 song.mp3", SortKey{Value: 12, Numbered: true}},
		{"Track 3 of 10.mp3", SortKey{Value: 3, Numbered: true}},
		{"/music/album/05.flac", SortKey{Value: 5, Numbered: true}},
		{"intro.mp3", Unordered},
		{"song.mp3.wav", SortKey{Value: 3, Numbered: true}},
		{"99999999999999999999999.mp3", SortKey{Value: math.MaxInt, Numbered: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KeyFor(tc.name); got != tc.want {
				t.Fatalf("KeyFor(%q) = %+v, want %+v", tc.name, got, tc.want)
			}
		})
	}
}

func TestHugeNumberSortsBeforeUnnumbered(t *testing.T) {
	got := Order([]string{"outro.mp3", "99999999999999999999999.mp3", "4.mp3"})
	want := []string{"4.mp3", "99999999999999999999999.mp3", "outro.mp3"}
	if !slices.Equal(got, want) {
		t.Fatalf("Order = %v, want %v", got, want)
	}
}

func TestSortKeyString(t *testing.T) {
	if got := (SortKey{Value: 4, Numbered: true}).String(); got != "4" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Unordered.String(); got != "-" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestOrdererMemoizesByFileName(t *testing.T) {
	o := NewOrderer()
	first := o.Key("/one/07 a.mp3")
	second := o.Key("/two/07 a.mp3")
	if first != second {
		t.Fatalf("expected identical keys, got %+v and %+v", first, second)
	}
	if len(o.cache) != 1 {
		t.Fatalf("expected one cache entry, got %d", len(o.cache))
	}
}

func TestOrderTracksReturnsKeys(t *testing.T) {
	tracks := OrderTracks([]string{"b.mp3", "2.mp3"})
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if tracks[0].Path != "2.mp3" || tracks[0].Key.Value != 2 {
		t.Fatalf("unexpected first track %+v", tracks[0])
	}
	if tracks[1].Key != Unordered {
		t.Fatalf("unexpected second key %+v", tracks[1].Key)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"10 - end.MP3", "02 - middle.flac", "01 - start.wav", "cover.jpg", ".03 hidden.mp3", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "04 sub.mp3"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "01 - start.wav"),
		filepath.Join(dir, "02 - middle.flac"),
		filepath.Join(dir, "10 - end.MP3"),
	}
	if !slices.Equal(got, want) {
		t.Fatalf("Discover = %v, want %v", got, want)
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestIsAudio(t *testing.T) {
	for _, name := range []string{"a.mp3", "b.WAV", "c.ogg", "d.flac", "e.aac", "f.m4a", "g.wma"} {
		if !IsAudio(name) {
			t.Errorf("expected %q to be audio", name)
		}
	}
	for _, name := range []string{"a.jpg", "b", "c.mp4"} {
		if IsAudio(name) {
			t.Errorf("expected %q not to be audio", name)
		}
	}
}
