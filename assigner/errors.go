package assigner

import "errors"

var (
	// ErrNoCandidates is returned when the available host pool is empty.
	ErrNoCandidates = errors.New("no available hosts")

	// ErrUnknownAlgorithm is returned for a distribution algorithm the
	// assigner does not implement.
	ErrUnknownAlgorithm = errors.New("unknown distribution algorithm")

	// ErrZeroRosterWeight is returned when weighting is enabled but the
	// roster weights sum to zero.
	ErrZeroRosterWeight = errors.New("total roster weight is zero")

	// ErrRecencyUnresolved is returned when a candidate cannot be
	// resolved to a recency value. Every candidate must resolve to at
	// least the never-booked sentinel, so this signals an upstream data
	// bug.
	ErrRecencyUnresolved = errors.New("host missing from recency index")
)

// IsConfigurationError reports whether err is fatal misconfiguration of the
// selection call. The caller must not fall back to an arbitrary host.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrNoCandidates) ||
		errors.Is(err, ErrUnknownAlgorithm) ||
		errors.Is(err, ErrZeroRosterWeight)
}

// IsDataIntegrityError reports whether err indicates inconsistent input
// data from a collaborator.
func IsDataIntegrityError(err error) bool {
	return errors.Is(err, ErrRecencyUnresolved)
}
