package typegen

import (
	"bytes"
	"os"

	"github.com/godot-bevy/typegen/errors"
	"github.com/godot-bevy/typegen/logger"
)

// CheckResult reports artifact freshness relative to a fresh render.
type CheckResult struct {
	Fresh   []string
	Stale   []string
	Missing []string
}

// Clean reports whether every artifact exists and matches its render.
func (r *CheckResult) Clean() bool {
	return len(r.Stale) == 0 && len(r.Missing) == 0
}

// Err returns nil for a clean result, otherwise an ErrStale-flavored error
// naming what drifted, for callers that map staleness to an exit code.
func (r *CheckResult) Err() error {
	if r.Clean() {
		return nil
	}
	err := errors.Wrapf(errors.ErrStale,
		"%d stale, %d missing", len(r.Stale), len(r.Missing))
	return errors.WithHint(err, "run godot-typegen and commit the regenerated files")
}

// Check renders every artifact from the schema already on disk and compares
// byte-for-byte with the committed files. It never runs the engine and never
// writes. CI uses it to reject schema or rules changes whose regenerated
// artifacts were not committed.
func (p *Pipeline) Check() (*CheckResult, error) {
	tax, err := p.buildTaxonomy(p.cfg.ResolvedAPIFile())
	if err != nil {
		return nil, err
	}

	result := &CheckResult{}
	for _, f := range p.render(tax) {
		existing, err := os.ReadFile(f.path)
		if err != nil {
			if os.IsNotExist(err) {
				result.Missing = append(result.Missing, f.path)
				p.log.Warnw("artifact missing",
					logger.FieldArtifact, f.name, logger.FieldFile, f.path)
				continue
			}
			return nil, errors.Wrapf(err, "reading %s", f.path)
		}
		if bytes.Equal(existing, f.content) {
			result.Fresh = append(result.Fresh, f.path)
			continue
		}
		result.Stale = append(result.Stale, f.path)
		p.log.Warnw("artifact out of date",
			logger.FieldArtifact, f.name, logger.FieldFile, f.path)
	}
	return result, nil
}
