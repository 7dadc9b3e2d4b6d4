package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/systmms/vaultkit/internal/logging"
)

func TestSetCommand_FromStdin(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, singleStoreConfig)

	cmd := NewSetCommand(cfg)
	cmd.SetIn(strings.NewReader("piped-secret\n"))
	executeCommand(t, cmd, "--store", "app", "--key", "api-token", "--stdin")

	// The trailing newline from the pipe is not part of the value.
	output := executeCommand(t, NewGetCommand(cfg), "--store", "app", "--key", "api-token")
	assert.Equal(t, "piped-secret", output)
}

func TestSetCommand_Overwrite(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, singleStoreConfig)

	executeCommand(t, NewSetCommand(cfg), "--store", "app", "--key", "api-token", "--value", "first")
	executeCommand(t, NewSetCommand(cfg), "--store", "app", "--key", "api-token", "--value", "second")

	output := executeCommand(t, NewGetCommand(cfg), "--store", "app", "--key", "api-token")
	assert.Equal(t, "second", output)
}

func TestSetCommand_DebugOutputRedactsValue(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, singleStoreConfig)

	var logbuf bytes.Buffer
	cfg.Logger = logging.NewWithWriter(&logbuf, true, true)

	executeCommand(t, NewSetCommand(cfg), "--store", "app", "--key", "api-token", "--value", "s3cr3t-value")
	output := executeCommand(t, NewGetCommand(cfg), "--store", "app", "--key", "api-token")
	require.Equal(t, "s3cr3t-value", output)

	// Debug logging mentions the write and the read but never the value.
	assert.Contains(t, logbuf.String(), "[REDACTED]")
	assert.NotContains(t, logbuf.String(), "s3cr3t-value")
}

func TestSetCommand_RejectsConflictingSources(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, singleStoreConfig)

	cmd := NewSetCommand(cfg)
	cmd.SetIn(strings.NewReader("piped"))
	cmd.SetArgs([]string{"--store", "app", "--key", "api-token", "--value", "flagged", "--stdin"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Both --value and --stdin")
}

func TestSetCommand_RejectsEmptyValue(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, singleStoreConfig)

	cmd := NewSetCommand(cfg)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{"--store", "app", "--key", "api-token", "--stdin"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No value to store")
}

func TestRemoveCommand_SingleKey(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, singleStoreConfig)

	executeCommand(t, NewSetCommand(cfg), "--store", "app", "--key", "api-token", "--value", "v")
	executeCommand(t, NewRemoveCommand(cfg), "--store", "app", "--key", "api-token")

	cmd := NewGetCommand(cfg)
	cmd.SetArgs([]string{"--store", "app", "--key", "api-token"})
	assert.Error(t, cmd.Execute())
}

func TestRemoveCommand_All(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, singleStoreConfig)

	executeCommand(t, NewSetCommand(cfg), "--store", "app", "--key", "one", "--value", "1")
	executeCommand(t, NewSetCommand(cfg), "--store", "app", "--key", "two", "--value", "2")
	executeCommand(t, NewRemoveCommand(cfg), "--store", "app", "--all")

	output := executeCommand(t, NewKeysCommand(cfg), "--store", "app")
	assert.Empty(t, output)
}

func TestRemoveCommand_RequiresExactlyOneMode(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, singleStoreConfig)

	t.Run("neither", func(t *testing.T) {
		cmd := NewRemoveCommand(cfg)
		cmd.SetArgs([]string{"--store", "app"})
		assert.Error(t, cmd.Execute())
	})

	t.Run("both", func(t *testing.T) {
		cmd := NewRemoveCommand(cfg)
		cmd.SetArgs([]string{"--store", "app", "--key", "x", "--all"})
		assert.Error(t, cmd.Execute())
	})
}

func TestKeysCommand_SortedOutput(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, singleStoreConfig)

	executeCommand(t, NewSetCommand(cfg), "--store", "app", "--key", "zebra", "--value", "1")
	executeCommand(t, NewSetCommand(cfg), "--store", "app", "--key", "alpha", "--value", "2")

	output := executeCommand(t, NewKeysCommand(cfg), "--store", "app")
	assert.Equal(t, "alpha\nzebra\n", output)
}
