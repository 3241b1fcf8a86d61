package touch

// State is the last contact accepted by Accept. The zero value means no
// contact has been accepted yet.
type State struct {
	Last  Contact
	Valid bool
}

// Accept decides whether the primary contact of r is a new touch event.
//
// Only the first contact is considered. Empty reports leave the state
// untouched. A primary contact with the same position and pressure as the
// last accepted one is suppressed, as long as that last contact was non-zero
// on every axis, so a held finger does not fire again on every poll.
// Anything else replaces the state and is emitted, except the all-zero
// sentinel, which is stored but never emitted.
func Accept(r Report, prior State) (Contact, bool, State) {
	primary, ok := r.Primary()
	if !ok {
		return Contact{}, false, prior
	}
	if prior.Valid && prior.Last.nonZeroAxes() && prior.Last.SameSample(primary) {
		return Contact{}, false, prior
	}

	next := State{Last: primary, Valid: true}
	if primary.IsZero() {
		return Contact{}, false, next
	}
	return primary, true, next
}
