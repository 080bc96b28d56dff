// Package testsupport holds fixtures shared by package tests: temp-dir
// configs, placeholder audio, generated images and an ffmpeg stand-in.
package testsupport
