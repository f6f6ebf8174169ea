// Package board models the geometry of a regulation steel-tip dartboard.
//
// Coordinates are millimetres relative to the board centre with +Y pointing
// at the 20 and +X towards the 6:
//
//   - [ScoreAt]: score value for a landing point
//   - [SegmentAt]: ring and sector a landing point falls in
//   - [AimPoints]: the named aim targets (bullseye, trebles 20..14)
//
// # Boundaries
//
// A point exactly on a ring wire belongs to the region inside the wire, so
// r == 170 is still a double and r == 16 is still the outer bull. A point
// exactly on a sector wire belongs to the sector clockwise from it.
//
// # Example
//
//	aim, _ := board.LookupAim("treble_20")
//	score := board.ScoreAt(aim.Point) // 60
package board
