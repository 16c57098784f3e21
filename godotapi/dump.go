package godotapi

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/godot-bevy/typegen/errors"
)

// DefaultDumpTimeout bounds a headless engine run. The dump itself takes a
// couple of seconds; anything longer means the editor hung on startup.
const DefaultDumpTimeout = 30 * time.Second

// dumpFileName is hardcoded by the engine: --dump-extension-api always
// writes extension_api.json into the process working directory.
const dumpFileName = "extension_api.json"

// candidateBinaries are tried in order when no engine command is configured.
var candidateBinaries = []string{"godot", "godot4", "/usr/local/bin/godot"}

// DumpExtensionAPI runs the engine headless to produce a fresh extension
// API dump at outPath. binSpec is a full command line ("flatpak run
// org.godotengine.Godot" works); when empty, well-known binary names are
// tried in order. The context bounds the run, with DefaultDumpTimeout
// applied when it carries no deadline.
func DumpExtensionAPI(ctx context.Context, binSpec string, outPath string, log *zap.SugaredLogger) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultDumpTimeout)
		defer cancel()
	}

	candidates, err := dumpCandidates(binSpec)
	if err != nil {
		return err
	}

	outDir := filepath.Dir(outPath)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating dump directory %s", outDir)
	}

	var attempts []string
	for _, argv := range candidates {
		start := time.Now()
		runErr := runDump(ctx, argv, outDir)
		if runErr == nil {
			if err := placeDump(outDir, outPath); err != nil {
				return err
			}
			log.Infow("Dumped extension API",
				"binary", strings.Join(argv, " "),
				"file", outPath,
				"duration_ms", time.Since(start).Milliseconds())
			return nil
		}

		attempts = append(attempts, strings.Join(argv, " "))
		log.Debugw("engine dump attempt failed",
			"binary", strings.Join(argv, " "),
			"error", runErr.Error())

		if ctx.Err() != nil {
			break
		}
	}

	err = errors.Wrapf(errors.ErrEngineUnavailable, "tried: %s", strings.Join(attempts, ", "))
	err = errors.WithHint(err, "install Godot 4.x and make sure it is on PATH, or point --godot-bin at the editor binary")
	return errors.WithHint(err, "an existing dump can be reused with --skip-dump --api-file <path>")
}

// dumpCandidates expands the configured command into one or more argv
// prefixes to try.
func dumpCandidates(binSpec string) ([][]string, error) {
	if strings.TrimSpace(binSpec) == "" {
		candidates := make([][]string, 0, len(candidateBinaries))
		for _, bin := range candidateBinaries {
			candidates = append(candidates, []string{bin})
		}
		return candidates, nil
	}

	argv, err := shellquote.Split(binSpec)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing engine command %q", binSpec)
	}
	if len(argv) == 0 {
		return nil, errors.Newf("engine command %q is empty", binSpec)
	}
	return [][]string{argv}, nil
}

// runDump executes one candidate binary with the dump flags. The engine
// writes into the process working directory, so the command runs inside
// outDir.
func runDump(ctx context.Context, argv []string, outDir string) error {
	args := append(argv[1:], "--headless", "--dump-extension-api")

	cmd := exec.CommandContext(ctx, argv[0], args...)
	cmd.Dir = outDir

	output, err := cmd.CombinedOutput()
	if err != nil {
		if len(output) > 0 {
			return errors.Wrapf(err, "engine output: %s", strings.TrimSpace(string(output)))
		}
		return err
	}

	if _, err := os.Stat(filepath.Join(outDir, dumpFileName)); err != nil {
		return errors.New("engine exited cleanly but produced no dump")
	}
	return nil
}

// placeDump moves the engine's fixed-name output to the configured path
// when they differ.
func placeDump(outDir, outPath string) error {
	produced := filepath.Join(outDir, dumpFileName)
	if produced == filepath.Clean(outPath) {
		return nil
	}
	if err := os.Rename(produced, outPath); err != nil {
		return errors.Wrapf(err, "moving dump to %s", outPath)
	}
	return nil
}
