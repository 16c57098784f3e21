package taxonomy

import (
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	gotoml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/godot-bevy/typegen/errors"
	"github.com/godot-bevy/typegen/logger"
)

// LoadFile reads a TOML rules file and merges it over base. Projects use
// this to exclude bespoke classes or gate classes from custom engine
// builds without forking the built-in tables.
func LoadFile(path string, base *Rules, log *zap.SugaredLogger) (*Rules, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	var overlay Rules
	if _, err := toml.DecodeFile(path, &overlay); err != nil {
		return nil, errors.Wrapf(err, "loading rules file %s", path)
	}
	merged := base.Merge(&overlay)
	log.Debugw("merged rules file over built-in tables",
		logger.FieldFile, path,
		"prefixes", len(merged.ExcludedPrefixes),
		"excluded", len(merged.ExcludedClasses),
		"unavailable", len(merged.UnavailableClasses),
		"gates", len(merged.Gates),
		"rust_names", len(merged.RustNames))
	return merged, nil
}

// Merge returns a new Rules combining r with an overlay. List tables
// append with duplicates dropped, the name table overlays key by key, and
// an overlay gate replaces a built-in gate with the same feature name.
func (r *Rules) Merge(overlay *Rules) *Rules {
	merged := &Rules{
		ExcludedPrefixes:   appendUnique(r.ExcludedPrefixes, overlay.ExcludedPrefixes),
		ExcludedClasses:    appendUnique(r.ExcludedClasses, overlay.ExcludedClasses),
		UnavailableClasses: appendUnique(r.UnavailableClasses, overlay.UnavailableClasses),
		RustNames:          make(map[string]string, len(r.RustNames)+len(overlay.RustNames)),
	}
	for class, name := range r.RustNames {
		merged.RustNames[class] = name
	}
	for class, name := range overlay.RustNames {
		merged.RustNames[class] = name
	}

	replaced := make(map[string]bool, len(overlay.Gates))
	for _, gate := range overlay.Gates {
		replaced[gate.Feature] = true
	}
	for _, gate := range r.Gates {
		if !replaced[gate.Feature] {
			merged.Gates = append(merged.Gates, gate)
		}
	}
	merged.Gates = append(merged.Gates, overlay.Gates...)
	return merged
}

func appendUnique(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(base)+len(extra))
	for _, s := range append(append([]string{}, base...), extra...) {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Render encodes rules as TOML with sorted tables, so the output is
// reproducible and diffs cleanly.
func Render(rules *Rules) ([]byte, error) {
	snapshot := *rules
	snapshot.ExcludedPrefixes = sortedCopy(rules.ExcludedPrefixes)
	snapshot.ExcludedClasses = sortedCopy(rules.ExcludedClasses)
	snapshot.UnavailableClasses = sortedCopy(rules.UnavailableClasses)

	data, err := gotoml.Marshal(&snapshot)
	if err != nil {
		return nil, errors.Wrap(err, "encoding rules")
	}
	return data, nil
}

// WriteFile renders rules as a TOML file, the starting point handed out
// by `godot-typegen rules --write`.
func WriteFile(path string, rules *Rules) error {
	data, err := Render(rules)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing rules file %s", path)
	}
	return nil
}

func sortedCopy(s []string) []string {
	out := append([]string{}, s...)
	sort.Strings(out)
	return out
}
