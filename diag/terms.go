package diag

// TermPrefix namespaces every warning term.
const TermPrefix = "frameupload.dxfwarning."

// Warning terms.
const (
	// A required part (bridge, shape or pad) is missing.
	TermPartsMissing = TermPrefix + "partsMissing"
	// Two parts that must touch share no edge. Data: part1, part2.
	TermConnectionMissing = TermPrefix + "connectionMissing"
	// Reconnection of two parts was aborted. Data: part1, part2.
	TermReconnectFailed = TermPrefix + "reconnectFailed"
	// A circle was drawn in a part that has no holes. Data: part.
	TermUnassignedCircle = TermPrefix + "unassignedCircle"
	// A path element could not be parsed. Data: part, id.
	TermMalformedPath = TermPrefix + "malformedPath"
	// The drawing has no usable geometry.
	TermNoGeometry = TermPrefix + "noGeometry"
	// Two parts meet along an arc, which is not reconnected. Data: part1, part2.
	TermArcConnection = TermPrefix + "arcConnection"
	// A colour map entry could not be parsed. Data: part, color.
	TermInvalidColor = TermPrefix + "invalidColor"
)
