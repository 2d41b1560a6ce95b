package presenter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func newTestPresenter() (*TerminalPresenter, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewWithOptions(out, errOut, ColorNever), out, errOut
}

func TestError(t *testing.T) {
	p, out, errOut := newTestPresenter()

	p.Error(errors.New("boom"), "loading corpus")

	assert.Empty(t, out.String())
	assert.Equal(t, "[ERROR] loading corpus: boom\n", errOut.String())
}

func TestErrorWithoutContext(t *testing.T) {
	p, _, errOut := newTestPresenter()

	p.Error(errors.New("boom"), "")

	assert.Equal(t, "[ERROR] boom\n", errOut.String())
}

func TestErrorNil(t *testing.T) {
	p, _, errOut := newTestPresenter()

	p.Error(nil, "whatever")

	assert.Empty(t, errOut.String())
}

func TestSuccessAndWarning(t *testing.T) {
	p, out, _ := newTestPresenter()

	p.Success("validation passed")
	p.Warning("2 warnings")

	assert.Contains(t, out.String(), "✓ validation passed\n")
	assert.Contains(t, out.String(), "⚠ 2 warnings\n")
}

func TestSection(t *testing.T) {
	p, out, _ := newTestPresenter()

	p.Section("Rules")

	assert.Equal(t, "Rules\n-----\n", out.String())
}

func TestQuietSuppressesNonErrors(t *testing.T) {
	p, out, errOut := newTestPresenter()
	p.SetQuiet(true)

	assert.True(t, p.IsQuiet())

	p.Success("hidden")
	p.Warning("hidden")
	p.Info("hidden")
	p.Section("hidden")
	p.Error(errors.New("still shown"), "")

	assert.Empty(t, out.String())
	assert.Equal(t, "[ERROR] still shown\n", errOut.String())
}

func TestColorModes(t *testing.T) {
	original := color.NoColor
	defer func() { color.NoColor = original }()

	NewWithOptions(&bytes.Buffer{}, &bytes.Buffer{}, ColorAlways)
	assert.False(t, color.NoColor)

	NewWithOptions(&bytes.Buffer{}, &bytes.Buffer{}, ColorNever)
	assert.True(t, color.NoColor)
}
