// Package touch decodes samples from a Goodix GT911/GT1151 capacitive touch
// controller and filters them into touch events.
package touch

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Register map and status bits of the controller.
const (
	RegStatus   uint16 = 0x814E // bit 7: ready, bits 0-3: contact count
	RegContacts uint16 = 0x814F // first contact record

	// AckMask is written to RegStatus to release the current sample.
	AckMask byte = 0x00

	statusReady     byte = 0x80
	statusCountMask byte = 0x0F
)

const (
	// MaxContacts is the number of simultaneous contacts the controller tracks.
	MaxContacts = 5

	// ContactSize is the size of one contact record in bytes.
	ContactSize = 8
)

// ErrDecode is matched by every *DecodeError.
var ErrDecode = errors.New("touch: malformed sample")

// DecodeError describes a contact payload that could not be decoded.
type DecodeError struct {
	Count int // contacts announced by the status register
	Size  int // bytes actually received
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("touch: malformed sample: %d contacts need %d bytes, got %d",
		e.Count, e.Count*ContactSize, e.Size)
}

// Is makes errors.Is(err, ErrDecode) hold for any *DecodeError.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// Contact is a single finger reported by the controller, in controller
// coordinates.
//
// The all-zero contact is used as "no touch" everywhere above the decoder.
// A real touch on the controller's (0,0) corner with zero pressure is
// therefore indistinguishable from no touch at all.
type Contact struct {
	TrackID  uint8
	X        uint16
	Y        uint16
	Pressure uint16
}

// IsZero reports whether c is the "no touch" sentinel.
func (c Contact) IsZero() bool {
	return c.X == 0 && c.Y == 0 && c.Pressure == 0
}

// SameSample reports whether c and o carry the same position and pressure.
// The track id is not compared.
func (c Contact) SameSample(o Contact) bool {
	return c.X == o.X && c.Y == o.Y && c.Pressure == o.Pressure
}

// nonZeroAxes reports whether none of x, y and pressure is zero.
func (c Contact) nonZeroAxes() bool {
	return c.X != 0 && c.Y != 0 && c.Pressure != 0
}

// DecodeContact parses one 8 byte contact record:
//
//	byte 0    track id
//	byte 1-2  x, little endian
//	byte 3-4  y, little endian
//	byte 5-6  pressure (touch area), little endian
//	byte 7    reserved
func DecodeContact(b []byte) (Contact, error) {
	if len(b) != ContactSize {
		return Contact{}, &DecodeError{Count: 1, Size: len(b)}
	}
	return Contact{
		TrackID:  b[0],
		X:        binary.LittleEndian.Uint16(b[1:3]),
		Y:        binary.LittleEndian.Uint16(b[3:5]),
		Pressure: binary.LittleEndian.Uint16(b[5:7]),
	}, nil
}

// DecodeContacts parses count consecutive contact records from data.
func DecodeContacts(data []byte, count int) ([]Contact, error) {
	if count < 0 || count > MaxContacts || len(data) != count*ContactSize {
		return nil, &DecodeError{Count: count, Size: len(data)}
	}
	contacts := make([]Contact, 0, count)
	for i := 0; i < count; i++ {
		c, err := DecodeContact(data[i*ContactSize : (i+1)*ContactSize])
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// AppendContact appends the wire encoding of c to dst.
func AppendContact(dst []byte, c Contact) []byte {
	dst = append(dst, c.TrackID)
	dst = binary.LittleEndian.AppendUint16(dst, c.X)
	dst = binary.LittleEndian.AppendUint16(dst, c.Y)
	dst = binary.LittleEndian.AppendUint16(dst, c.Pressure)
	return append(dst, 0)
}
