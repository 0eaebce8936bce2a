// Package grid implements the widget placement engine for dashboard layouts.
//
// The engine places rectangular widgets on an integer grid, keeps them
// non-overlapping, compacts them toward the top, and resolves the conflicts
// that arise while a widget is being interactively dragged. It is the pure
// algorithmic core of gridlock: every entry point is a synchronous function
// from (widget set, config) to (widget set) or (position), with no I/O and
// no retained state.
//
// # Coordinate System
//
// All coordinates are grid cells, not pixels. A [Position] is the rectangle
// {X, Y, W, H}; X grows rightward, Y grows downward, and row 0 is the top of
// the board. [GridConfig.Columns] bounds every widget's horizontal extent.
//
// # Operations
//
//   - [Optimize]: compact all unlocked widgets toward the top (or, in float
//     mode, only clamp them into horizontal bounds)
//   - [ResolveConflicts]: push widgets out from under a dragged widget, then
//     re-compact everything except the dragged widget
//   - [FindBestPosition]: first free rectangle for a new widget in row-major
//     scan order
//
// # Determinism
//
// Compaction is a greedy single pass over widgets sorted by (Y, X) ascending;
// the sort is stable, so equal keys keep their input order. Given the same
// input list and config, every operation produces the same output.
//
// # Locked Widgets
//
// A widget with Locked set contributes to occupancy but is never moved by any
// operation. Its output position always equals its input position.
//
// # Concurrency
//
// Each call builds and discards its own occupancy index and mutates only its
// own copy of the widget list. Concurrent callers are independent.
package grid
