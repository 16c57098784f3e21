package typegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const wiredPlugin = `use super::node_type_checking_generated::add_comprehensive_node_type_markers;

fn handle_node_added(entity_commands: &mut EntityCommands, node: &mut GodotNodeHandle) {
    add_comprehensive_node_type_markers(entity_commands, node);
}
`

const unwiredPlugin = `fn handle_node_added(entity_commands: &mut EntityCommands, node: &mut GodotNodeHandle) {
    add_node_type_markers(entity_commands, node);
}
`

func TestVerifyIntegrationWired(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugin.rs")
	require.NoError(t, os.WriteFile(path, []byte(wiredPlugin), 0o644))

	status := VerifyIntegration(path, zap.NewNop().Sugar())
	assert.Equal(t, WiringOK, status)
}

func TestVerifyIntegrationNeeded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugin.rs")
	require.NoError(t, os.WriteFile(path, []byte(unwiredPlugin), 0o644))

	status := VerifyIntegration(path, zap.NewNop().Sugar())
	assert.Equal(t, WiringNeeded, status)
}

func TestVerifyIntegrationConsumerMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugin.rs")

	status := VerifyIntegration(path, zap.NewNop().Sugar())
	assert.Equal(t, WiringUnknown, status)
}

// The verifier reads and reports; it must never rewrite the consumer.
func TestVerifyIntegrationNeverModifies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugin.rs")
	require.NoError(t, os.WriteFile(path, []byte(unwiredPlugin), 0o644))

	VerifyIntegration(path, zap.NewNop().Sugar())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, unwiredPlugin, string(data))
}
