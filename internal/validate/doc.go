// Package validate checks queries and request parameters against a server
// configuration.
//
// Every function is pure: it reads the Configuration and returns the first
// violation found as an *sruerr.InvalidError, or nil. Nothing here mutates
// the configuration, so validators may run concurrently against a shared
// one.
//
// # Default substitution
//
// A clause that omits its context set or index is checked against the
// configured defaults. The choice is made by a single resolution step used
// for context sets, indexes and relations alike:
//
//	explicit value given            -> check the explicit value
//	defaults enabled, default set   -> check the default
//	defaults disabled               -> skip the check
//	defaults enabled, no default    -> error
//
// Defaults are disabled by Configuration.DisableValidationForCQLDefaults.
package validate
