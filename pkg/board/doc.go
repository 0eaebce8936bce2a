// Package board provides the serialization boundary for the placement engine.
//
// This package defines the canonical wire format for gridlock's board data,
// used for JSON files, API requests and responses, and store persistence.
//
// # Architecture
//
// The package sits between the pure engine and the outside world:
//
//   - [Board]: a named widget list plus its grid configuration
//   - pkg/grid: the placement engine the operations delegate to
//   - pkg/store: persists marshalled boards under their names
//
// # Wire Format
//
// Positions are {"x","y","w","h"}, widgets are {"id","position","locked"},
// configs are {"columns","gap","float","static_grid"}; absent fields default
// to zero values. Drag-session state never crosses the boundary.
//
// # Operations
//
// [OptimizeLayout], [ResolveConflictsLayout] and [FindBestPosition] mirror
// the engine entry points at the byte level: JSON in, JSON out. Malformed
// input produces a DECODE_ERROR naming the operation and the argument that
// failed; the operations never panic. A dragged widget id that matches
// nothing is not an error - conflict resolution falls back to plain
// compaction.
//
// # File I/O
//
// Boards round-trip through [ReadBoard]/[WriteBoard] and the file
// convenience wrappers:
//
//	b, _ := board.ReadBoardFile("dashboard.json")
//	b.Widgets = grid.Optimize(b.Widgets, b.Config)
//	_ = board.WriteBoardFile(b, "dashboard.json")
package board
