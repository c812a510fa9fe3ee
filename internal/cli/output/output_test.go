package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveModeAuto(t *testing.T) {
	// A bytes.Buffer is not a TTY, so auto resolves to markdown.
	r := NewRenderer(new(bytes.Buffer), new(bytes.Buffer), ModeAuto)
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestEffectiveModeExplicit(t *testing.T) {
	for _, mode := range []Mode{ModeText, ModeMarkdown, ModeJSON} {
		r := NewRenderer(new(bytes.Buffer), new(bytes.Buffer), mode)
		assert.Equal(t, mode, r.EffectiveMode())
	}
}

func TestSuccessAndStatusLine(t *testing.T) {
	out := new(bytes.Buffer)
	r := NewRenderer(out, new(bytes.Buffer), ModeMarkdown)

	r.Success("done")
	r.StatusLine("models/staging", "success", "")

	assert.Contains(t, out.String(), "✓ done")
	assert.Contains(t, out.String(), "models/staging")
}

func TestErrorGoesToErrWriter(t *testing.T) {
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	r := NewRenderer(out, errOut, ModeMarkdown)

	r.Error("boom")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "boom")
}

func TestJSON(t *testing.T) {
	out := new(bytes.Buffer)
	r := NewRenderer(out, new(bytes.Buffer), ModeJSON)

	require.NoError(t, r.JSON(map[string]string{"status": "ok"}))
	assert.JSONEq(t, `{"status": "ok"}`, out.String())
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "## Models", FormatHeader(2, "Models"))
	assert.Equal(t, "- **Project**: acme", FormatKeyValue("Project", "acme"))
}
