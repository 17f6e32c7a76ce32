package geometry

// Field and display constants. The internal coordinate system is the editor's
// display space: every meter of field is FieldScale units and the origin sits
// at the top-left corner of the area around the pitch.
const (
	FieldScale = 7.0

	// Half extents of the whole drawable area, pitch plus surroundings.
	HalfWidth  = 58.0
	HalfHeight = 39.0

	// Half extents of the pitch itself.
	FieldHalfLength = 52.5
	FieldHalfWidth  = 34.0

	// Digits kept after the decimal point for anything written to a file.
	Precision = 2
)
