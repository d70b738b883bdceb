package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMainExitCodes(t *testing.T) {
	isolate(t)
	root := grinTree(t)

	t.Run("success", func(t *testing.T) {
		cmd := NewGrinCommand()
		var out, errOut bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&errOut)

		code := Main(context.Background(), cmd, GrinArgsEnv, []string{"-l", "foo", filepath.Join(root, "a.txt")})
		assert.Equal(t, 0, code)
		assert.Equal(t, filepath.Join(root, "a.txt")+"\n", out.String())
		assert.Empty(t, errOut.String())
	})

	t.Run("error", func(t *testing.T) {
		cmd := NewGrinCommand()
		var out, errOut bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&errOut)

		code := Main(context.Background(), cmd, GrinArgsEnv, []string{"--engine", "pcre", "foo"})
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut.String(), "Error: invalid configuration")
	})
}
