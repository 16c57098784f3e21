package godotapi

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version parses the header's engine version. Gate resolution compares
// this against each gate's minimum version to warn when a dump predates
// the types it is expected to contain.
func (h Header) Version() (*semver.Version, error) {
	return semver.NewVersion(fmt.Sprintf("%d.%d.%d", h.VersionMajor, h.VersionMinor, h.VersionPatch))
}

// FullName returns the engine's own description of itself, e.g.
// "Godot Engine v4.3.stable.official". Older dumps without the field get
// a reconstructed one.
func (h Header) FullName() string {
	if h.VersionFullName != "" {
		return h.VersionFullName
	}
	name := fmt.Sprintf("Godot Engine v%d.%d.%d", h.VersionMajor, h.VersionMinor, h.VersionPatch)
	if h.VersionStatus != "" {
		name += "." + h.VersionStatus
	}
	return name
}
