package competency

import "errors"

// ErrNoOpenPosition reports that a candidate's position has no opening in the
// positional requirements, which is distinct from a competency shortfall.
var ErrNoOpenPosition = errors.New("no open position for candidate")

// Missing returns the required tags the candidate does not have, in the order
// they appear in required.
func Missing(required []string, have Set) []string {
	missing := make([]string, 0)
	for _, tag := range required {
		if !have.Contains(tag) {
			missing = append(missing, tag)
		}
	}
	return missing
}

// Eligible reports whether the candidate holds every required tag. An empty
// required set is always satisfied.
func Eligible(required []string, have Set) bool {
	return len(Missing(required, have)) == 0
}

// MatchPosition evaluates positional requirements keyed by position name.
// If the candidate's position is not a key, it returns ErrNoOpenPosition.
// Otherwise it returns the missing tags for that position (empty = eligible).
func MatchPosition(required map[string][]string, position string, have Set) ([]string, error) {
	needed, ok := required[position]
	if !ok {
		return nil, ErrNoOpenPosition
	}
	return Missing(needed, have), nil
}
