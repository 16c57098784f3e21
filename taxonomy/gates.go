package taxonomy

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/godot-bevy/typegen/errors"
)

// Gate binds a set of classes to a cargo feature flag and the engine
// release that introduced them. Membership is an exact table lookup; no
// version heuristics are applied to class names.
type Gate struct {
	// Feature is the cargo feature name, e.g. "api-4-4".
	Feature string `toml:"feature"`

	// MinVersion is the first engine release shipping these classes,
	// e.g. "4.4".
	MinVersion string `toml:"min_version"`

	// Classes lists the gated engine class names.
	Classes []string `toml:"classes"`
}

// CfgAttr renders the conditional-compilation attribute placed on every
// declaration and dispatch arm for a gated class.
func (g Gate) CfgAttr() string {
	return fmt.Sprintf("#[cfg(feature = %q)]", g.Feature)
}

// Min parses MinVersion. "4.4" is accepted as shorthand for "4.4.0".
func (g Gate) Min() (*semver.Version, error) {
	v, err := semver.NewVersion(g.MinVersion)
	if err != nil {
		return nil, errors.Wrapf(err, "gate %s has invalid min_version %q", g.Feature, g.MinVersion)
	}
	return v, nil
}
