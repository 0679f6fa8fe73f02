package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoNeedsTerminal(t *testing.T) {
	orig := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = orig }()

	err := runDemo(demoCmd, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "toasts run")
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"demo", "run", "dismissed", "version"} {
		assert.True(t, names[want], "missing command %q", want)
	}
}

func TestRunFlagsParse(t *testing.T) {
	defer func() {
		runTemporary, runPermanent, runClose, runSimulate = nil, nil, 0, false
	}()
	require.NoError(t, runCmd.ParseFlags([]string{
		"--temporary", "a:3",
		"--temporary", "b:4",
		"--permanent", "c:hello, world",
		"--close", "1",
		"--simulate",
	}))
	assert.Equal(t, []string{"a:3", "b:4"}, runTemporary)
	assert.Equal(t, []string{"c:hello, world"}, runPermanent)
	assert.Equal(t, 1, runClose)
	assert.True(t, runSimulate)
}
