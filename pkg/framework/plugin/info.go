package plugin

import (
	"crypto/sha1"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrZeroUID is returned for an unset class identifier
var ErrZeroUID = errors.New("plugin: zero class id")

// UID is a 128-bit class identifier written as four 32-bit words
type UID [4]uint32

// Bytes returns the identifier in big-endian word order
func (u UID) Bytes() [16]byte {
	var b [16]byte
	for i, w := range u {
		binary.BigEndian.PutUint32(b[i*4:], w)
	}
	return b
}

// IsZero reports an unset identifier
func (u UID) IsZero() bool {
	return u == UID{}
}

func (u UID) String() string {
	return fmt.Sprintf("%08X%08X%08X%08X", u[0], u[1], u[2], u[3])
}

// DeriveUID hashes a reverse-domain identifier into a stable UID for
// classes that have no registered one.
func DeriveUID(id string) UID {
	sum := sha1.Sum([]byte(id))
	var u UID
	for i := range u {
		u[i] = binary.BigEndian.Uint32(sum[i*4:])
	}
	return u
}

// Info contains processor metadata
type Info struct {
	ID       string // Reverse-domain identifier, e.g. "com.example.myplugin"
	Name     string
	Version  string
	Vendor   string
	Category string // "Fx", "Instrument", ...

	ProcessorUID  UID
	ControllerUID UID
}

// Validate checks the class identifiers are set and distinct
func (i Info) Validate() error {
	if i.ProcessorUID.IsZero() || i.ControllerUID.IsZero() {
		return fmt.Errorf("%w: %s", ErrZeroUID, i.ID)
	}
	if i.ProcessorUID == i.ControllerUID {
		return fmt.Errorf("plugin: %s: processor and controller share id %s", i.ID, i.ProcessorUID)
	}
	return nil
}
