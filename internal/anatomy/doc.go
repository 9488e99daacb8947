// Package anatomy holds the facial zone taxonomy and the constant calibration
// tables the coordinate mapping and validation packages read from.
//
// # Coordinate Spaces
//
//   - Normalized: 0.0-1.0 per axis, X left to right, Y forehead to chin.
//   - Percentage: the same axes scaled to 0-100.
//   - Model: the 3D space of the rendered head mesh, bounded by
//     x in [-1.2, 1.2], y in [-1.0, 1.6], z in [0.5, 2.0]. Y grows upward.
//
// # Bilateral Zones
//
// Periorbital and masseter boundaries are stored for the patient-image left
// side only (x below 0.5). The right side is derived by mirroring x to 1-x.
//
// # Thread Safety
//
// Every table is built at package initialization and never written again.
// Accessors return copies, so all functions are safe for concurrent use.
package anatomy
