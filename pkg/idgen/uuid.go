package idgen

import (
	"encoding/binary"
	"encoding/hex"
	"sync/atomic"
	"time"
)

// UUID is an opaque 128-bit identifier. Decal ids are UUIDs; the map model
// treats them as opaque comparable values, never parsing their contents.
type UUID [16]byte

// String renders the UUID as a 32-character lowercase hex string.
func (u UUID) String() string {
	return hex.EncodeToString(u[:])
}

// IsZero reports whether u is the zero UUID, used as the "unset" sentinel
// before a decal has been assigned a real id.
func (u UUID) IsZero() bool {
	return u == UUID{}
}

// epoch is captured once at process start and used as the high 64 bits of
// every generated UUID, so that ids minted by different processes in the
// same run are extremely unlikely to collide even before the counter is
// consulted.
var epoch = uint64(time.Now().UnixNano())

// counter is the monotone low-64-bits source. Starting it above zero keeps
// the all-zero UUID reserved as the "unset" sentinel.
var counter uint64 = 1

// Generator mints monotonically increasing UUIDs. The zero value is ready
// to use; a Generator is safe for concurrent use.
type Generator struct{}

// NewGenerator returns a ready-to-use decal id generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Next returns the next UUID in the monotone sequence. Successive calls
// (even across Generator values, since the counter is process-global) never
// repeat within the same process run.
func (g *Generator) Next() UUID {
	n := atomic.AddUint64(&counter, 1)

	var u UUID
	binary.BigEndian.PutUint64(u[0:8], epoch)
	binary.BigEndian.PutUint64(u[8:16], n)
	return u
}
