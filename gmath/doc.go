// Package gmath is the numerical substrate of the NOVA-CAD kernel.
//
// It provides:
//
//	Vec2/Vec3     — points and free vectors in 2D/3D
//	Mat3/Mat4     — linear and affine transform matrices
//	Quaternion    — unit quaternions with SLERP, backed by go-gl/mathgl
//	Transform     — rigid transform as translation + quaternion
//	Interval      — closed floating-point range with robust arithmetic
//	AABB          — axis-aligned bounding box
//	Tolerance     — hierarchical linear/angular resolution context
//	Predicates    — adaptive-precision orientation / in-circle / in-sphere tests
//
// Every downstream "which side" decision in geometry, topology and
// operations funnels through the Predicates sub-module; nothing above
// this package is allowed to compare floating-point signs directly.
//
// Package gmath is named to avoid shadowing the standard library
// "math" package at import sites, the same way the teacher avoids
// "converters" colliding with its own sibling tree (see converterts/doc.go).
package gmath
