// Package synctech implements direct (synchronous) modeling: editing a
// body by moving its faces rather than by replaying a parametric
// feature history. It never mutates a *topology.Body in place —
// MoveFaces reads the body via its public accessors, resolves the
// topology bounding the moved faces, and constructs a fresh Body via
// topology.NewFromBRep, the same build-a-new-body discipline
// operations/edgeblend.go follows for Fillet and Chamfer (which build
// theirs with topology.NewFromPolygonSoup).
//
// DetectRules finds the geometric relations (parallel, perpendicular,
// concentric, coplanar, symmetric, tangent) a face edit should
// preserve; RecognizeFeatures groups a body's faces post hoc into
// hole, fillet and chamfer regions whose handles a caller can drag.
package synctech
