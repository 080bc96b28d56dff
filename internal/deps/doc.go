// Package deps locates the external binaries vidgen shells out to and
// reports whether they are usable.
package deps
