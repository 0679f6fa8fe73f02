package cmd

import (
	"bytes"
	"testing"

	"github.com/cristianoliveira/toasts/internal/version"
	"github.com/stretchr/testify/assert"
)

func TestPrintVersion(t *testing.T) {
	orig := versionOutputWriter
	defer func() { versionOutputWriter = orig }()

	var buf bytes.Buffer
	versionOutputWriter = &buf
	PrintVersion()

	assert.Equal(t, "toasts v"+version.String()+"\n", buf.String())
}
