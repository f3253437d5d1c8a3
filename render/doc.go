// Package render drives painting of a terminal character grid.
//
// An Engine accumulates invalidation between frames, brackets drawing in
// paint sessions, and presents the smallest update the display needs. Two
// engines implement the contract: PixelEngine tracks a pixel-space dirty
// rectangle plus a scroll delta and presents through a surface swap chain;
// CellEngine keeps old and new copies of every row and blits the cells
// that differ straight into a terminal screen.
package render
