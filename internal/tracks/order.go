package tracks

import (
	"cmp"
	"math"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
)

var (
	leadingDigits = regexp.MustCompile(`^\d+`)
	anyDigits     = regexp.MustCompile(`\d+`)
)

// SortKey orders a track. Keys without a number sort after every numbered key.
type SortKey struct {
	Value    int
	Numbered bool
}

// Unordered is the sentinel key assigned to names without any digits.
var Unordered = SortKey{Value: math.MaxInt}

// Compare returns -1, 0 or +1 in the style of cmp.Compare.
func (k SortKey) Compare(other SortKey) int {
	if k.Numbered != other.Numbered {
		if k.Numbered {
			return -1
		}
		return 1
	}
	return cmp.Compare(k.Value, other.Value)
}

func (k SortKey) String() string {
	if !k.Numbered {
		return "-"
	}
	return strconv.Itoa(k.Value)
}

// Track is an audio file paired with its derived sort key.
type Track struct {
	Path string
	Key  SortKey
}

// KeyFor derives the sort key of a file name. The extension is ignored; a
// digit run at the start of the name wins, otherwise the first digit run
// anywhere in the name is used.
func KeyFor(name string) SortKey {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	digits := leadingDigits.FindString(stem)
	if digits == "" {
		digits = anyDigits.FindString(stem)
	}
	if digits == "" {
		return Unordered
	}
	value, err := strconv.Atoi(digits)
	if err != nil {
		// Out of int range; still a number, so it stays ahead of unnumbered names.
		value = math.MaxInt
	}
	return SortKey{Value: value, Numbered: true}
}

// Orderer sorts audio paths by their derived keys and memoizes keys by file
// name. It is safe for concurrent use.
type Orderer struct {
	mu    sync.Mutex
	cache map[string]SortKey
}

// NewOrderer returns an Orderer with an empty key cache.
func NewOrderer() *Orderer {
	return &Orderer{cache: make(map[string]SortKey)}
}

// Key returns the memoized sort key for path's file name.
func (o *Orderer) Key(path string) SortKey {
	name := filepath.Base(path)
	o.mu.Lock()
	defer o.mu.Unlock()
	if key, ok := o.cache[name]; ok {
		return key
	}
	key := KeyFor(name)
	o.cache[name] = key
	return key
}

// Tracks returns the paths paired with their keys in ascending key order.
// Equal keys keep their input order.
func (o *Orderer) Tracks(paths []string) []Track {
	out := make([]Track, 0, len(paths))
	for _, path := range paths {
		out = append(out, Track{Path: path, Key: o.Key(path)})
	}
	slices.SortStableFunc(out, func(a, b Track) int {
		return a.Key.Compare(b.Key)
	})
	return out
}

// Order returns a new slice with paths in ascending key order.
func (o *Orderer) Order(paths []string) []string {
	tracks := o.Tracks(paths)
	out := make([]string, len(tracks))
	for i, track := range tracks {
		out[i] = track.Path
	}
	return out
}

var defaultOrderer = NewOrderer()

// Order sorts paths with the shared package-level Orderer.
func Order(paths []string) []string {
	return defaultOrderer.Order(paths)
}

// OrderTracks is Order returning keys alongside the paths.
func OrderTracks(paths []string) []Track {
	return defaultOrderer.Tracks(paths)
}
