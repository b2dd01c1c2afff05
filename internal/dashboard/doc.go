// Package dashboard implements the interactive health dashboard as a
// Bubble Tea program.
//
// The model owns two independent polls, one for the fleet summary and one
// for the host shown on the detail route. Each runs on a poll.Handle;
// leaving a route or switching hosts releases its handle so late ticks and
// responses are dropped instead of landing in the wrong view.
//
// Keyboard shortcuts:
//   - q / Ctrl+C: quit
//   - r: refresh now (retry after a failed load)
//   - s: cycle overview sort order
//   - up/k, down/j, Home, End: move the selection or scroll the detail view
//   - Enter: open the selected host
//   - Esc: back to the overview
//   - h: host picker
//   - g: go to a path
//   - ?: help
package dashboard
