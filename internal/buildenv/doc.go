// Package buildenv validates the local build environment against the
// version manifest checked into the repository.
//
// Initialization runs in a fixed order:
//
//	start -> manifest loaded -> bazel checked -> xcode checked -> ready
//
// Any step may fail. Configuration problems (a missing manifest field, an
// executable that cannot be resolved, output that does not look like bazel)
// are returned as ordinary errors. Operator-facing misconfiguration (the SDK
// path is missing, the Xcode version cannot be parsed, or a version mismatch
// without an override) is returned as a *FatalError. The package never exits
// the process; the command line decides what a fatal error means.
package buildenv
