package validate

// resolution records where a validated value came from.
type resolution int

const (
	resolvedExplicit resolution = iota
	resolvedDefault
	skipped
	unresolved
)

// resolve picks the value to validate: the explicit one, else the default
// when defaults are enabled.
func resolve(explicit, fallback string, defaultsEnabled bool) (string, resolution) {
	switch {
	case explicit != "":
		return explicit, resolvedExplicit
	case !defaultsEnabled:
		return "", skipped
	case fallback != "":
		return fallback, resolvedDefault
	default:
		return "", unresolved
	}
}
