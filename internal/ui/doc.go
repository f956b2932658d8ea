// Package ui provides theme and color support for the line output and the
// dashboard. Colors are disabled by --no-color, by NO_COLOR, and when the
// output is not a terminal.
package ui
