package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zalando/go-keyring"
)

func TestDoctorCommand_ReportsEveryStore(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, `
version: 1
stores:
  app:
    identifier: com.example.cli-test
  secure:
    identifier: com.example.cli-test
    enclave: true
`)

	output := executeCommand(t, NewDoctorCommand(cfg))

	assert.Contains(t, output, "STORE")
	assert.Contains(t, output, "app")
	assert.Contains(t, output, "vault reachable")
	assert.Contains(t, output, "secure")
	assert.Contains(t, output, "enclave-protected")
}

func TestDoctorCommand_FailsOnBrokenConfig(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t, "version: 7\n")

	cmd := NewDoctorCommand(cfg)
	assert.Error(t, cmd.Execute())
}
