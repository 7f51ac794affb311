// Package tz resolves the reference timezone events are entered and shown in.
package tz

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// Default is the reference timezone when none is configured.
const Default = "EET"

// Load returns the named location, or Default when name is empty. The
// embedded tz database makes this independent of the host.
func Load(name string) (*time.Location, error) {
	if name == "" {
		name = Default
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("tz: load %s: %w", name, err)
	}
	return loc, nil
}
