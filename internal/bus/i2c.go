package bus

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// GoodixAddress is the 7-bit address of the GT911/GT1151 touch controller.
const GoodixAddress uint16 = 0x14

// I2C is a register bus backed by a periph.io I2C device.
type I2C struct {
	bus i2c.BusCloser
	dev *i2c.Dev
}

// OpenI2C opens the named I2C bus and binds it to the device at addr.
// host.Init must have been called before.
func OpenI2C(name string, addr uint16) (*I2C, error) {
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", name, err)
	}
	return &I2C{
		bus: b,
		dev: &i2c.Dev{Bus: b, Addr: addr},
	}, nil
}

// ReadRegister reads n bytes starting at reg.
func (d *I2C) ReadRegister(reg uint16, n int) ([]byte, error) {
	r := make([]byte, n)
	if err := d.dev.Tx(registerAddress(reg), r); err != nil {
		return nil, &Error{Op: OpRead, Register: reg, Err: err}
	}
	return r, nil
}

// WriteRegister writes data starting at reg.
func (d *I2C) WriteRegister(reg uint16, data []byte) error {
	w := append(registerAddress(reg), data...)
	if err := d.dev.Tx(w, nil); err != nil {
		return &Error{Op: OpWrite, Register: reg, Err: err}
	}
	return nil
}

// Close releases the underlying bus.
func (d *I2C) Close() error {
	if d == nil || d.bus == nil {
		return nil
	}
	return d.bus.Close()
}

func (d *I2C) String() string {
	return fmt.Sprintf("%s@0x%02X", d.bus, d.dev.Addr)
}

var _ Bus = (*I2C)(nil)
