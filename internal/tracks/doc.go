// Package tracks derives a deterministic play order for audio files from the
// numbers in their names.
//
// A name's key is the digit run at its start, or else the first digit run
// anywhere in it. Names without digits sort last. Sorting is stable, so
// equal keys keep the order in which they were supplied.
package tracks
