package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellScriptCommands(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "scripts/run_server.sh", "#!/bin/bash\n# Start the development server\nexec uvicorn app:app\n")
	writeFile(t, root, "scripts/test_all.sh", "#!/bin/bash\npytest\n")
	writeFile(t, root, "scripts/helpers.sh", "#!/bin/bash\n# Launch everything at once\n")
	writeFile(t, root, "scripts/noise.sh", "#!/bin/bash\n# ----------------------\nset -e\n")
	writeFile(t, root, "tools/other.sh", "#!/bin/bash\n")

	all := []string{
		"scripts/run_server.sh",
		"scripts/test_all.sh",
		"scripts/helpers.sh",
		"scripts/noise.sh",
		"tools/other.sh",
	}

	cmds := ShellScriptCommands(root, all)

	byCommand := map[string]string{}
	for _, c := range append(cmds["dev"], cmds["test"]...) {
		byCommand[c.Command] = c.Description
	}

	assert.Equal(t, "Start the development server", byCommand["bash scripts/run_server.sh"])

	// header comments of helper scripts never become descriptions
	assert.Equal(t, "Helper script used by other repo scripts.", byCommand["bash scripts/helpers.sh"])

	// separator-art comments fall back to the generic description
	assert.Equal(t, "Run repo script entrypoint.", byCommand["bash scripts/noise.sh"])

	// scripts outside scripts/ are not surfaced
	assert.NotContains(t, byCommand, "bash tools/other.sh")

	// "test" in the name routes to the test group
	require.Len(t, cmds["test"], 1)
	assert.Equal(t, "bash scripts/test_all.sh", cmds["test"][0].Command)
	assert.Equal(t, "derived", cmds["test"][0].Confidence)
}

func TestIsSafeDescription(t *testing.T) {
	safe := []string{
		"Start the development server",
		"Builds docs and publishes them",
	}
	for _, s := range safe {
		assert.True(t, isSafeDescription(s), s)
	}

	unsafe := []string{
		"",
		"export PATH=/usr/bin",
		"FOO=bar",
		"cd /tmp && run",
		"bash other.sh",
		"------------------",
		"SETUP",
	}
	for _, s := range unsafe {
		assert.False(t, isSafeDescription(s), s)
	}
}

func TestIsHelperScript(t *testing.T) {
	assert.True(t, isHelperScript("scripts/utils.sh"))
	assert.True(t, isHelperScript("scripts/common.sh"))
	assert.True(t, isHelperScript("scripts/build_helpers.sh"))
	assert.False(t, isHelperScript("scripts/run.sh"))
}
