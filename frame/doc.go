// Package frame turns a coloured reference drawing of one half of an
// eyewear frame into the outline of the whole frame at an ordered size.
//
// The pipeline runs in this order:
//
//	MakeModelParts   drawing -> PartSet (one Model per part, normalised)
//	FindConnections  edges shared by adjacent parts at the reference size
//	ScaleParts       per-part distortion to the target size
//	Reconnect        re-stitch scaled parts along their connections
//	Combine          holes, boolean union, mirror and seam union
//
// Combine drives all of it; the individual stages are exported for tests
// and tooling. Recoverable problems are reported as diag.Warning values in
// the Result, never as errors.
package frame
