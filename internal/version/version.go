// Package version contains information on the current version of the
// program. It is split from the main program for easy use by every cmd/
// binary in the toolchain.
package version

// Current is the string representing the current version of wlp4c.
const Current = "0.1.0"
