package loader

import (
	"errors"
	"fmt"

	"golang.org/x/mod/semver"
)

// CurrentVersion is the description format version this package writes.
const CurrentVersion = "v1.0.0"

// ErrUnsupportedVersion is returned for descriptions whose format version
// this package cannot read.
var ErrUnsupportedVersion = errors.New("loader: unsupported description version")

// CheckVersion accepts any valid semantic version with the same major
// version as CurrentVersion. An empty version means CurrentVersion.
func CheckVersion(v string) error {
	if v == "" {
		return nil
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, v)
	}
	if semver.Major(v) != semver.Major(CurrentVersion) {
		return fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedVersion, v, semver.Major(CurrentVersion))
	}
	return nil
}
