package typegen

import (
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/godot-bevy/typegen/errors"
	"github.com/godot-bevy/typegen/logger"
	"github.com/godot-bevy/typegen/rust"
)

// WiringStatus reports whether the consumer plugin calls the generated
// dispatcher.
type WiringStatus string

const (
	// WiringOK means the plugin already references the generated entry point.
	WiringOK WiringStatus = "ok"

	// WiringNeeded means the plugin exists but never calls the generated
	// dispatcher, so fresh artifacts are dead code until someone wires them.
	WiringNeeded WiringStatus = "needs-manual-wiring"

	// WiringUnknown means the plugin file is absent or unreadable and no
	// judgement is possible.
	WiringUnknown WiringStatus = "consumer-missing"
)

// VerifyIntegration checks whether the consumer plugin references the
// generated marker dispatcher. It is advisory: it never modifies the plugin
// and never fails the run. Generated artifacts that nothing calls are a
// silent integration gap, so WiringNeeded comes with wiring instructions.
func VerifyIntegration(pluginPath string, log *zap.SugaredLogger) WiringStatus {
	data, err := os.ReadFile(pluginPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnw("plugin.rs not found, skipping integration check",
				logger.FieldFile, pluginPath,
				logger.FieldError, errors.ErrConsumerMissing)
		} else {
			log.Warnw("could not read plugin.rs, skipping integration check",
				logger.FieldFile, pluginPath,
				logger.FieldError, err)
		}
		return WiringUnknown
	}

	if strings.Contains(string(data), rust.EntryPoint) {
		log.Debugw("plugin already integrated with generated code",
			logger.FieldFile, pluginPath)
		return WiringOK
	}

	log.Warnw("plugin integration needed", logger.FieldFile, pluginPath)
	log.Warnf("  1. Add: use super::node_type_checking_generated::%s;", rust.EntryPoint)
	log.Warnf("  2. Replace add_node_type_markers calls with %s", rust.EntryPoint)
	log.Warn("  3. This is a one-time setup, future runs will not need it")
	return WiringNeeded
}
