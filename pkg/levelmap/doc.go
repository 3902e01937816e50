// Package levelmap holds the strongly-typed map/room/entity/decal/styleground
// tree described in spec.md §3, plus the accessors and invariants the action
// algebra (pkg/action) relies on. It decodes from and encodes to pkg/binel
// element trees but never performs I/O itself.
package levelmap
