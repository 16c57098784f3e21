package typegen

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/godot-bevy/typegen/errors"
	"github.com/godot-bevy/typegen/logger"
)

// stagedFile pairs rendered artifact bytes with their destination path.
type stagedFile struct {
	name    string
	path    string
	content []byte
}

// commitAll writes every staged file or none of them. All content lands in
// .tmp siblings first; destinations are only replaced once every temp write
// has succeeded. A failure during staging removes the temps and leaves any
// previously committed artifacts exactly as they were, so consumers never
// see a half-regenerated set.
func commitAll(files []stagedFile, log *zap.SugaredLogger) error {
	temps := make([]string, 0, len(files))
	cleanup := func() {
		for _, tmp := range temps {
			if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
				log.Warnw("could not remove staged temp file",
					logger.FieldFile, tmp, logger.FieldError, err)
			}
		}
	}

	for _, f := range files {
		if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
			cleanup()
			return errors.Wrapf(err, "creating output directory for %s", f.path)
		}
		tmp := f.path + ".tmp"
		if err := os.WriteFile(tmp, f.content, 0o644); err != nil {
			cleanup()
			return errors.Wrapf(err, "staging %s", f.path)
		}
		temps = append(temps, tmp)
	}

	for i, f := range files {
		if err := os.Rename(temps[i], f.path); err != nil {
			cleanup()
			return errors.Wrapf(err, "committing %s", f.path)
		}
		log.Debugw("wrote artifact",
			logger.FieldArtifact, f.name,
			logger.FieldFile, f.path,
			logger.FieldSize, len(f.content),
		)
	}
	return nil
}
