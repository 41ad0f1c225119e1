// Package relay models simple relay logic: a relay conducts when its
// switch is closed and its power source is live. Relays compose into
// gates by wiring one relay's output to another's switch or power input,
// and parallel relays merge into a wired-OR.
package relay

import (
	"errors"

	"github.com/hackmach/hackmach/translate"
)

var f = translate.From

var (
	ErrSwitchWired = errors.New(f("switch is wired to another source"))
)

// Source is a queryable signal.
type Source func() bool

// Fixed returns a constant signal source.
func Fixed(state bool) Source {
	return func() bool { return state }
}

// Relay is a single relay. The zero value is an unpowered relay with a
// manual switch in the open position.
type Relay struct {
	Power  Source // Power input; nil is unpowered.
	Switch Source // Wired switch input; nil leaves the switch manual.

	switchOn bool
}

// SwitchOn closes the manual switch. A switch wired to another source
// cannot be operated manually.
func (r *Relay) SwitchOn() (err error) {
	if r.Switch != nil {
		return ErrSwitchWired
	}

	r.switchOn = true

	return
}

// SwitchOff opens the manual switch. A switch wired to another source
// cannot be operated manually.
func (r *Relay) SwitchOff() (err error) {
	if r.Switch != nil {
		return ErrSwitchWired
	}

	r.switchOn = false

	return
}

func (r *Relay) switchState() bool {
	if r.Switch != nil {
		return r.Switch()
	}

	return r.switchOn
}

func (r *Relay) powerState() bool {
	if r.Power != nil {
		return r.Power()
	}

	return false
}

// OutputState queries the relay's output: live when the switch is closed
// and the power source is live.
func (r *Relay) OutputState() bool {
	return r.switchState() && r.powerState()
}

// Output returns a handle to the output state, for connecting pieces.
func (r *Relay) Output() Source {
	return r.OutputState
}

// HasOutput merges the outputs of relays connected in parallel.
func HasOutput(relays []*Relay) bool {
	for _, r := range relays {
		if r.OutputState() {
			return true
		}
	}

	return false
}
