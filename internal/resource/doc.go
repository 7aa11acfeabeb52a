// Package resource accounts for the memory held by an index's tables.
//
// Every stored point is charged against the Controller before it is written.
// With a hard limit configured the charge fails fast instead of growing the
// tables; without one the Controller only tracks usage.
package resource
