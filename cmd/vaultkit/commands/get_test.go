package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/systmms/vaultkit/internal/config"
	"github.com/systmms/vaultkit/internal/logging"
)

// The tests run against go-keyring's in-memory mock, which is process-global,
// so none of them run in parallel.

func testConfig(t *testing.T, content string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vaultkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return &config.Config{Path: path, Logger: logging.New(false, true)}
}

func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return buf.String()
}

const singleStoreConfig = `
version: 1
stores:
  app:
    identifier: com.example.cli-test
`

func TestGetCommand_RoundTrip(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, singleStoreConfig)

	executeCommand(t, NewSetCommand(cfg), "--store", "app", "--key", "api-token", "--value", "s3cr3t-value")
	output := executeCommand(t, NewGetCommand(cfg), "--store", "app", "--key", "api-token")

	// Raw output is just the value, no trailing newline.
	assert.Equal(t, "s3cr3t-value", output)
}

func TestGetCommand_JSONOutput(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, singleStoreConfig)

	executeCommand(t, NewSetCommand(cfg), "--store", "app", "--key", "api-token", "--value", "s3cr3t-value")
	output := executeCommand(t, NewGetCommand(cfg), "--store", "app", "--key", "api-token", "--json")

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, "app", result["store"])
	assert.Equal(t, "api-token", result["key"])
	assert.Equal(t, "s3cr3t-value", result["value"])
	assert.Equal(t, "standard", result["scope"])
}

func TestGetCommand_MissingKey(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, singleStoreConfig)

	cmd := NewGetCommand(cfg)
	cmd.SetArgs([]string{"--store", "app", "--key", "absent"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vaultkit keys")
}

func TestGetCommand_UnknownStore(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, singleStoreConfig)

	cmd := NewGetCommand(cfg)
	cmd.SetArgs([]string{"--store", "nope", "--key", "api-token"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store not found")
}

func TestGetCommand_MissingFlags(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, singleStoreConfig)

	t.Run("missing store flag", func(t *testing.T) {
		cmd := NewGetCommand(cfg)
		cmd.SetArgs([]string{"--key", "api-token"})
		assert.Error(t, cmd.Execute())
	})

	t.Run("missing key flag", func(t *testing.T) {
		cmd := NewGetCommand(cfg)
		cmd.SetArgs([]string{"--store", "app"})
		assert.Error(t, cmd.Execute())
	})
}

func TestGetCommand_NonInteractiveEnclave(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, `
version: 1
stores:
  secure:
    identifier: com.example.cli-test
    enclave: true
`)
	cfg.NonInteractive = true

	cmd := NewGetCommand(cfg)
	cmd.SetArgs([]string{"--store", "secure", "--key", "api-token"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user presence")
}
