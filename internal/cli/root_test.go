package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_Commands(t *testing.T) {
	root := NewRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"get", "post", "put", "patch", "delete", "head", "run"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_Help(t *testing.T) {
	stdout, _, err := execute(t)
	assert.NoError(t, err)
	assert.Contains(t, stdout, "sockhttp")
	assert.Contains(t, stdout, "Available Commands")
}

func TestRootCmd_Version(t *testing.T) {
	stdout, _, err := execute(t, "--version")
	assert.NoError(t, err)
	assert.Contains(t, stdout, version)
}
