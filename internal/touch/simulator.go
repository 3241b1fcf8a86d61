package touch

import (
	"fmt"
	"sync"

	"github.com/samdwyer/inkquest/internal/bus"
)

// Simulator emulates the register file of the touch controller. It lets the
// decoder run without hardware, for example behind the terminal panel.
//
// While a contact is held the controller raises the ready flag again after
// every acknowledgment, reporting the same sample until it is released.
type Simulator struct {
	mu       sync.Mutex
	status   byte
	contacts []Contact
	held     bool
	nextID   uint8
	acks     int
	reads    map[uint16]int
}

// NewSimulator returns a simulator with no pending sample.
func NewSimulator() *Simulator {
	return &Simulator{reads: make(map[uint16]int)}
}

// Press starts (or moves) a single contact at the given controller
// coordinates.
func (s *Simulator) Press(x, y, pressure uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.held {
		s.nextID++
	}
	s.held = true
	s.contacts = []Contact{{TrackID: s.nextID, X: x, Y: y, Pressure: pressure}}
	s.status = statusReady | 1
}

// Release lifts the current contact. The controller reports the release as a
// ready sample with zero contacts.
func (s *Simulator) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.held = false
	s.contacts = nil
	s.status = statusReady
}

// SetSample raises the ready flag with an arbitrary status value and contact
// data. It is meant for exercising the decoder with unusual samples.
func (s *Simulator) SetSample(status byte, contacts ...Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.held = false
	s.status = status
	s.contacts = append([]Contact(nil), contacts...)
}

// Acks returns how many acknowledgments were written to the status register.
func (s *Simulator) Acks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acks
}

// Reads returns how many reads started at reg.
func (s *Simulator) Reads(reg uint16) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[reg]
}

// ReadRegister implements bus.Bus.
func (s *Simulator) ReadRegister(reg uint16, n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reads[reg]++
	switch {
	case reg == RegStatus && n == 1:
		if s.held && s.status&statusReady == 0 {
			s.status = statusReady | byte(len(s.contacts))
		}
		return []byte{s.status}, nil
	case reg >= RegContacts && int(reg-RegContacts)+n <= MaxContacts*ContactSize:
		block := make([]byte, 0, MaxContacts*ContactSize)
		for _, c := range s.contacts {
			block = AppendContact(block, c)
		}
		block = append(block, make([]byte, MaxContacts*ContactSize-len(block))...)
		off := int(reg - RegContacts)
		return append([]byte(nil), block[off:off+n]...), nil
	default:
		return nil, &bus.Error{Op: bus.OpRead, Register: reg, Err: fmt.Errorf("%d bytes outside the register file", n)}
	}
}

// WriteRegister implements bus.Bus. Only the status register is writable.
func (s *Simulator) WriteRegister(reg uint16, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if reg != RegStatus || len(data) != 1 {
		return &bus.Error{Op: bus.OpWrite, Register: reg, Err: fmt.Errorf("register is read-only")}
	}
	s.status = data[0]
	if data[0] == AckMask {
		s.acks++
	}
	return nil
}

var _ bus.Bus = (*Simulator)(nil)
