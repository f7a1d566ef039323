// Package framecad is a small 2D CAD kernel for eyewear frame outlines.
//
// # Overview
//
// Geometry is held in a Model: a tree of named segments (Line or Arc) and
// named child models, each with an optional origin offset. Segments are
// addressed by a Route, the list of keys leading to them, so they can be
// rewritten in place while the tree stays intact.
//
// The kernel provides the operations the frame pipeline (package frame)
// is built from:
//   - Clone, Originate, Translate, Transform, Mirror, Distort
//   - Bounds and Contains
//   - FindChains and CleanupViaChains
//   - Simplify
//   - Intersections, SplitAt
//   - Union and Subtract
//
// # Coordinate System
//
//   - X increases right, Y increases up
//   - Angles in degrees, 0 is right, arcs sweep counter-clockwise
//
// # Tolerance
//
// Every coincidence test takes an explicit tolerance in drawing units.
// DefaultTolerance is the value used by the frame pipeline.
//
// # Mutation
//
// Transforms mutate the receiver. Clone a model before changing it when the
// original must survive; Union and Subtract never touch their inputs.
package framecad

// DefaultTolerance is the distance below which two points coincide.
const DefaultTolerance = 0.01
