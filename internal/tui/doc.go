// Package tui implements the interactive dashboard: a bubbletea program
// showing the batch log, scan totals and host load while the batch loop
// runs in the background. The loop talks to the program through Reporter.
package tui
