package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

const twoStoreConfig = `
version: 1
stores:
  old-app:
    identifier: com.example.cli-test
    accessibility: after-first-unlock
  app:
    identifier: com.example.cli-test
`

func TestMigrateCommand_FromStore(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, twoStoreConfig)

	executeCommand(t, NewSetCommand(cfg), "--store", "old-app", "--key", "api-token", "--value", "s3cr3t")
	executeCommand(t, NewMigrateCommand(cfg), "--from", "old-app", "--to", "app")

	output := executeCommand(t, NewGetCommand(cfg), "--store", "app", "--key", "api-token")
	assert.Equal(t, "s3cr3t", output)

	// The source was emptied.
	assert.Empty(t, executeCommand(t, NewKeysCommand(cfg), "--store", "old-app"))
}

func TestMigrateCommand_KeepLeavesSource(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, twoStoreConfig)

	executeCommand(t, NewSetCommand(cfg), "--store", "old-app", "--key", "api-token", "--value", "s3cr3t")
	executeCommand(t, NewMigrateCommand(cfg), "--from", "old-app", "--to", "app", "--keep")

	assert.Equal(t, "api-token\n", executeCommand(t, NewKeysCommand(cfg), "--store", "old-app"))
	assert.Equal(t, "api-token\n", executeCommand(t, NewKeysCommand(cfg), "--store", "app"))
}

func TestMigrateCommand_ConflictAborts(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, twoStoreConfig)

	executeCommand(t, NewSetCommand(cfg), "--store", "old-app", "--key", "api-token", "--value", "new")
	executeCommand(t, NewSetCommand(cfg), "--store", "app", "--key", "api-token", "--value", "existing")

	cmd := NewMigrateCommand(cfg)
	cmd.SetArgs([]string{"--from", "old-app", "--to", "app"})
	require.Error(t, cmd.Execute())

	// Destination untouched.
	output := executeCommand(t, NewGetCommand(cfg), "--store", "app", "--key", "api-token")
	assert.Equal(t, "existing", output)
}

func TestMigrateCommand_RequiresExactlyOneMode(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, twoStoreConfig)

	t.Run("no mode", func(t *testing.T) {
		cmd := NewMigrateCommand(cfg)
		cmd.SetArgs([]string{"--to", "app"})
		assert.Error(t, cmd.Execute())
	})

	t.Run("two modes", func(t *testing.T) {
		cmd := NewMigrateCommand(cfg)
		cmd.SetArgs([]string{"--to", "app", "--from", "old-app", "--legacy"})
		assert.Error(t, cmd.Execute())
	})
}
