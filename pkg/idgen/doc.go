// Package idgen provides the two deterministic-derivation helpers shared by
// the autotiler and the map model: a stable per-position hash used to pick
// among equally-weighted tile candidates, and a monotone 128-bit generator
// used to mint decal ids.
//
// The hash combines the point's coordinates through SHA-256 and takes the
// leading bytes as the output: a pure function of position rather than a
// seeded random stream. The id generator does not hash anything: each id is
// a process-start timestamp (high 64 bits) followed by a process-global
// atomic counter (low 64 bits).
package idgen
