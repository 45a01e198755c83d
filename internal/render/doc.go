// Package render turns analysis results into image artifacts.
//
//   - [BuildPanels] / [SaveFigure]: two-panel finite-size-scaling figure
//     (raw susceptibility, data collapse) as a PNG
//   - [Animator]: spin snapshots to GIF or MJPEG AVI, one frame per snapshot
//     in input order
//
// Every artifact is written to a temporary file next to its destination and
// renamed into place only after encoding succeeded.
package render
