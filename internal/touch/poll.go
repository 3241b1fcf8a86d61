package touch

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/inkquest/internal/bus"
	"github.com/samdwyer/inkquest/internal/telemetry"
)

// Report is the result of one poll cycle.
type Report struct {
	// Ready is set when the controller flagged a new sample.
	Ready bool

	// Contacts holds the decoded contacts in controller order. It is empty
	// when no valid sample was available.
	Contacts []Contact
}

// Primary returns the first contact of the report.
func (r Report) Primary() (Contact, bool) {
	if len(r.Contacts) == 0 {
		return Contact{}, false
	}
	return r.Contacts[0], true
}

// Poll reads one sample from the controller.
//
// Whenever the status register was read successfully the status register is
// acknowledged exactly once, so the controller can report the next sample.
// Contact data is only read for counts in [1, MaxContacts]. Bus failures are
// returned as *bus.Error, malformed payloads as *DecodeError. Poll never
// retries.
func Poll(ctx context.Context, b bus.Bus) (Report, error) {
	_, span := telemetry.Tracer("touch").Start(ctx, "touch.poll")
	defer span.End()

	report, err := poll(b)
	span.SetAttributes(
		attribute.Bool("touch.ready", report.Ready),
		attribute.Int("touch.contacts", len(report.Contacts)),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return report, err
}

func poll(b bus.Bus) (Report, error) {
	status, err := b.ReadRegister(RegStatus, 1)
	if err != nil {
		return Report{}, bus.Wrap(bus.OpRead, RegStatus, err)
	}
	if len(status) != 1 {
		return Report{}, &DecodeError{Count: 0, Size: len(status)}
	}

	if status[0]&statusReady == 0 {
		return Report{}, ack(b)
	}

	count := int(status[0] & statusCountMask)
	if count < 1 || count > MaxContacts {
		return Report{Ready: true}, ack(b)
	}

	data, readErr := b.ReadRegister(RegContacts, count*ContactSize)
	ackErr := ack(b)
	if readErr != nil {
		return Report{Ready: true}, errors.Join(bus.Wrap(bus.OpRead, RegContacts, readErr), ackErr)
	}
	if ackErr != nil {
		return Report{Ready: true}, ackErr
	}

	contacts, err := DecodeContacts(data, count)
	if err != nil {
		return Report{Ready: true}, err
	}
	return Report{Ready: true, Contacts: contacts}, nil
}

func ack(b bus.Bus) error {
	return bus.Wrap(bus.OpWrite, RegStatus, b.WriteRegister(RegStatus, []byte{AckMask}))
}
