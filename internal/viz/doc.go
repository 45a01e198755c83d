// Package viz shows a finite-size-scaling figure in the terminal.
//
// It is the display output mode of the collapse command:
//
//   - [FigureModel]: Bubble Tea model with the raw and collapse panels
//   - [Canvas]: Braille-based pixel canvas, one colour per series
//   - [Viewport]: maps data coordinates onto a canvas and drops points
//     outside the visible window
//
// # Key Bindings
//
//	Tab   - Cycle both / raw / collapse
//	1 2 0 - Raw, collapse, both
//	Q     - Quit
package viz
