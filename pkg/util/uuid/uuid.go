// Package uuid wraps github.com/google/uuid with the player identity helpers
// used by the formatting engine.
package uuid

import (
	"crypto/md5"
	"fmt"

	guuid "github.com/google/uuid"
)

type UUID guuid.UUID

// Nil is the empty UUID, all zeros.
var Nil = UUID(guuid.Nil)

// String returns the dashed string form xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx.
func (i UUID) String() string {
	return guuid.UUID(i).String()
}

// IsNil reports whether i is the Nil UUID.
func (i UUID) IsNil() bool { return i == Nil }

// MarshalText implements encoding.TextMarshaler.
func (i UUID) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *UUID) UnmarshalText(b []byte) (err error) {
	*i, err = Parse(string(b))
	return
}

// Parse decodes s into a UUID. Dashed, undashed, urn and braced forms are accepted.
func Parse(s string) (UUID, error) {
	id, err := guuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("invalid uuid %q: %w", s, err)
	}
	return UUID(id), nil
}

// OfflinePlayerUUID returns the uuid a Minecraft server assigns to username in offline mode.
func OfflinePlayerUUID(username string) UUID {
	const version = 3 // UUID v3
	uuid := md5.Sum([]byte("OfflinePlayer:" + username))
	uuid[6] = (uuid[6] & 0x0f) | uint8((version&0xf)<<4)
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // RFC 4122 variant
	return uuid
}

// New creates a new random UUID or panics.
func New() UUID { return UUID(guuid.New()) }
