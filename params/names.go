// Package params binds physical string quantities to analog inputs and packs
// them into the simulation parameter vector.
package params

import (
	"fmt"

	"github.com/cwbudde/algo-dss/dss"
)

// Name identifies one controllable physical quantity. The numeric value is
// also the analog channel the quantity is wired to.
type Name int

const (
	L Name = iota
	Rho
	R
	T
	E
	Sigma0
	Sigma1
	Loc

	NumNames = int(Loc) + 1
)

// Order of params in the simulation vector. Do not change.
var canonicalOrder = [dss.NumParameters]Name{L, Rho, R, T, E, Sigma0, Sigma1}

var nameStrings = [NumNames]string{"L", "rho", "r", "T", "E", "sigma0", "sigma1", "loc"}

func (n Name) String() string {
	if n < 0 || int(n) >= NumNames {
		return fmt.Sprintf("Name(%d)", int(n))
	}
	return nameStrings[n]
}

// Valid reports whether n is a known quantity.
func (n Name) Valid() bool {
	return n >= 0 && int(n) < NumNames
}

// Channel returns the analog channel the quantity reads from.
func (n Name) Channel() int {
	return int(n)
}

// CanonicalID returns n's index in the simulation vector, or -1 when the
// quantity is not part of it.
func CanonicalID(n Name) int {
	for i, c := range canonicalOrder {
		if c == n {
			return i
		}
	}
	return -1
}

// CanonicalOrder returns the simulation vector order.
func CanonicalOrder() [dss.NumParameters]Name {
	return canonicalOrder
}

// ParseName resolves the string form used in presets and reports.
func ParseName(s string) (Name, bool) {
	for i, str := range nameStrings {
		if str == s {
			return Name(i), true
		}
	}
	return 0, false
}
