package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrindListsAllFiles(t *testing.T) {
	isolate(t)
	root := grinTree(t)

	out, _, err := executeCommand(NewGrindCommand(), "", "--dirs", root)
	require.NoError(t, err)
	assert.Equal(t, root+"/a.txt\n"+root+"/b.py\n", out)
}

func TestGrindGlob(t *testing.T) {
	isolate(t)
	root := grinTree(t)

	out, _, err := executeCommand(NewGrindCommand(), "", "--dirs", root, "*.py")
	require.NoError(t, err)
	assert.Equal(t, root+"/b.py\n", out)
}

func TestGrindNullSeparated(t *testing.T) {
	isolate(t)
	root := grinTree(t)

	out, _, err := executeCommand(NewGrindCommand(), "", "-0", "--dirs", root, "*.txt")
	require.NoError(t, err)
	assert.Equal(t, root+"/a.txt\x00", out)
}

func TestGrindSkipFlags(t *testing.T) {
	isolate(t)
	root := grinTree(t)

	out, _, err := executeCommand(NewGrindCommand(), "", "-s", "-d", "", "--dirs", root, "*.txt")
	require.NoError(t, err)
	assert.Equal(t, root+"/.hidden.txt\n"+root+"/a.txt\n"+root+"/build/c.txt\n", out)
}

func TestGrindMultipleDirs(t *testing.T) {
	isolate(t)
	one := t.TempDir()
	two := t.TempDir()
	writeFile(t, filepath.Join(one, "x.go"), "package x\n")
	writeFile(t, filepath.Join(two, "y.go"), "package y\n")

	out, _, err := executeCommand(NewGrindCommand(), "", "--dirs", one+","+two, "*.go")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(one, "x.go")+"\n"+filepath.Join(two, "y.go")+"\n", out)
}

func TestGrindTooManyArgs(t *testing.T) {
	isolate(t)

	_, _, err := executeCommand(NewGrindCommand(), "", "*.py", "*.go")
	require.Error(t, err)
}

func TestGrindDefaultSkipExts(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "logo.png"), "\x89PNG\r\n\x1a\n\x00")
	writeFile(t, filepath.Join(root, "notes.txt"), "notes\n")
	writeFile(t, filepath.Join(root, "notes.txt.gz"), "not really gzip\n")
	writeFile(t, filepath.Join(root, "mod.pyc"), "\x00\x01")

	out, _, err := executeCommand(NewGrindCommand(), "", "--dirs", root)
	require.NoError(t, err)
	assert.Equal(t, root+"/logo.png\n"+root+"/notes.txt\n", out)

	out, _, err = executeCommand(NewGrindCommand(), "", "-e", ".png", "--dirs", root)
	require.NoError(t, err)
	assert.Equal(t, root+"/mod.pyc\n"+root+"/notes.txt\n"+root+"/notes.txt.gz\n", out)
}
