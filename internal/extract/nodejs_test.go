package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeCommandsNpmWithLockfile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"scripts":{"dev":"vite","test":"vitest"}}`)
	writeFile(t, root, "package-lock.json", "{}")

	cmds := NodeCommands(root, []string{"package.json", "package-lock.json"}, 256_000)

	require.Len(t, cmds["install"], 1)
	assert.Equal(t, "npm ci", cmds["install"][0].Command)
	assert.Equal(t, "package.json:lockfile", cmds["install"][0].Source)

	require.Len(t, cmds["dev"], 1)
	assert.Equal(t, "npm run dev", cmds["dev"][0].Command)
	require.Len(t, cmds["test"], 1)
	assert.Equal(t, "npm run test", cmds["test"][0].Command)
	assert.Empty(t, cmds["lint"])
}

func TestNodeCommandsPnpmLockfileWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"scripts":{"lint":"eslint ."}}`)
	writeFile(t, root, "pnpm-lock.yaml", "lockfileVersion: 6")

	cmds := NodeCommands(root, []string{"package.json", "pnpm-lock.yaml"}, 256_000)

	require.Len(t, cmds["install"], 1)
	assert.Equal(t, "pnpm install", cmds["install"][0].Command)
	require.Len(t, cmds["lint"], 1)
	assert.Equal(t, "pnpm run lint", cmds["lint"][0].Command)
}

func TestNodeCommandsPackageManagerFieldWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"packageManager":"yarn@4.0.2","scripts":{"test":"jest"}}`)
	// npm lockfile present, but the explicit field wins
	writeFile(t, root, "package-lock.json", "{}")

	cmds := NodeCommands(root, []string{"package.json", "package-lock.json"}, 256_000)

	require.Len(t, cmds["install"], 1)
	assert.Equal(t, "yarn install", cmds["install"][0].Command)
	assert.Equal(t, "yarn run test", cmds["test"][0].Command)
}

func TestNodeCommandsNoEvidence(t *testing.T) {
	t.Run("no package.json", func(t *testing.T) {
		assert.Empty(t, NodeCommands(t.TempDir(), []string{"main.py"}, 256_000))
	})

	t.Run("package.json without any package manager signal", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "package.json", `{"scripts":{"test":"jest"}}`)
		assert.Empty(t, NodeCommands(root, []string{"package.json"}, 256_000))
	})

	t.Run("malformed package.json", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "package.json", "{not json")
		writeFile(t, root, "yarn.lock", "")
		assert.Empty(t, NodeCommands(root, []string{"package.json", "yarn.lock"}, 256_000))
	})
}

func TestNodeCommandsPrefersRootPackageJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"scripts":{"dev":"next dev"}}`)
	writeFile(t, root, "yarn.lock", "")
	writeFile(t, root, "app/package.json", `{"scripts":{"dev":"other"}}`)

	cmds := NodeCommands(root, []string{"app/package.json", "package.json", "yarn.lock"}, 256_000)

	require.Len(t, cmds["dev"], 1)
	assert.Equal(t, "package.json:scripts.dev", cmds["dev"][0].Source)
}
