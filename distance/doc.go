// Package distance provides float64 vector distance calculations.
//
// # Supported Metrics
//
//   - MetricSquaredL2: Squared Euclidean distance (default ranking metric)
//   - MetricL2: Euclidean distance
//   - MetricAngle: angle in radians between two vectors
//
// # Usage
//
//	dist := distance.SquaredL2(a, b)
//	dot := distance.Dot(a, b)
//	unit, ok := distance.NormalizeL2Copy(vec)
package distance
