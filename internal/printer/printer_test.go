package printer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	var out, errOut bytes.Buffer
	prevOut, prevErr := stdout, stderr
	SetOutput(&out, &errOut)
	t.Cleanup(func() {
		color.NoColor = noColor
		SetOutput(prevOut, prevErr)
	})
	return &out, &errOut
}

func TestSuccess(t *testing.T) {
	out, _ := capture(t)
	Success("wrote %s\n", "ergodox.svg")
	Success("✓ already prefixed\n")
	assert.Equal(t, "✓ wrote ergodox.svg\n✓ already prefixed\n", out.String())
}

func TestWarningGoesToStderr(t *testing.T) {
	out, errOut := capture(t)
	Warning("keymap %q has no labels\n", "Blank")
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), `keymap "Blank" has no labels`)
}

func TestInfoAndStep(t *testing.T) {
	out, errOut := capture(t)
	Step("checking %s\n", "pad.yaml")
	Info("  %s: %d keys\n", "Default", 3)
	assert.Equal(t, "→ checking pad.yaml\n  Default: 3 keys\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestError(t *testing.T) {
	errPlanck := errors.New(`keyboard "Planck": not found`)

	t.Run("single suggestion", func(t *testing.T) {
		_, errOut := capture(t)
		err := Error("Unknown keyboard", errPlanck, []string{"Run 'keyviz-export list'"})
		require.Error(t, err)
		assert.ErrorIs(t, err, errPlanck)
		assert.Equal(t, `Unknown keyboard: keyboard "Planck": not found`, err.Error())
		assert.Equal(t, "Unknown keyboard\n\nkeyboard \"Planck\": not found\n\nRun 'keyviz-export list'\n", errOut.String())
	})

	t.Run("several suggestions are numbered", func(t *testing.T) {
		_, errOut := capture(t)
		err := Error("Bad layout", errPlanck, []string{"Fix the file", "Drop --layouts"})
		require.Error(t, err)
		assert.Contains(t, errOut.String(), "Either:\n  1. Fix the file\n  2. Drop --layouts\n")
	})

	t.Run("without a cause", func(t *testing.T) {
		_, errOut := capture(t)
		err := Error("Nothing to do", nil, nil)
		assert.EqualError(t, err, "Nothing to do")
		assert.Equal(t, "Nothing to do\n\n", errOut.String())
	})
}
