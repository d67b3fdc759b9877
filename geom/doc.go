// Package geom provides the geometry used by the script interpreter:
// points and affine matrices, the tangent-arc solver, quadratic to cubic
// conversion, and the shape helpers (rectangles, rounded rectangles,
// circles, ellipses, sectors) written against the PathBuilder interface.
//
// All functions are pure. Angles are in radians and the coordinate
// system is y-down, so a Clockwise sweep traces increasing angles.
package geom
