package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/formmap/internal/core/domain"
)

// fakeClipboard records writes.
type fakeClipboard struct {
	available bool
	written   *domain.Extraction
}

func (f *fakeClipboard) Available() bool { return f.available }

func (f *fakeClipboard) Write(_ context.Context, e *domain.Extraction) error {
	f.written = e
	return nil
}

func TestExtractCmd_RequiresExactlyOneArg(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "extract")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestExtractCmd_PrintsJSONWhenNotATerminal(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "extract", "form.json")

	require.NoError(t, err)
	assert.Equal(t, []string{"form.json"}, env.extract.refs)
	assert.JSONEq(t, `{"entry.100":{"options":["Yes","No"],"open_ended":false},"entry.200":{"options":[],"open_ended":true}}`, out)
	assert.Less(t, indexOf(out, "entry.100"), indexOf(out, "entry.200"))
	require.Len(t, env.extractOp, 1)
	assert.True(t, env.extractOp[0].History)
	assert.Empty(t, env.extractOp[0].Provider)
}

func TestExtractCmd_Compact(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "extract", "--compact", "form.json")

	require.NoError(t, err)
	assert.Equal(t, `{"entry.100":{"options":["Yes","No"],"open_ended":false},"entry.200":{"options":[],"open_ended":true}}`+"\n", out)
}

func TestExtractCmd_NoHistoryAndProvider(t *testing.T) {
	env := setupTestServices(t)

	_, err := execute(t, "extract", "--no-history", "--provider", "browser", "https://forms.gle/abc")

	require.NoError(t, err)
	require.Len(t, env.extractOp, 1)
	assert.False(t, env.extractOp[0].History)
	assert.Equal(t, domain.FetchProviderBrowser, env.extractOp[0].Provider)
}

func TestExtractCmd_RejectsUnknownProvider(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "extract", "--provider", "curl", "form.json")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtractCmd_PropagatesFailure(t *testing.T) {
	env := setupTestServices(t)
	env.extract.err = domain.ErrStructureNotFound

	_, err := execute(t, "extract", "form.json")

	assert.ErrorIs(t, err, domain.ErrStructureNotFound)
}

func TestExtractCmd_Clipboard(t *testing.T) {
	setupTestServices(t)
	cb := &fakeClipboard{available: true}
	prev := newClipboardSink
	newClipboardSink = func() clipboardSink { return cb }
	t.Cleanup(func() { newClipboardSink = prev })

	out, err := execute(t, "extract", "--clipboard", "form.json")

	require.NoError(t, err)
	assert.Contains(t, out, "entry.100")
	require.NotNil(t, cb.written)
	assert.Equal(t, 2, cb.written.FieldCount())
}

func TestExtractCmd_ClipboardUnavailable(t *testing.T) {
	env := setupTestServices(t)
	prev := newClipboardSink
	newClipboardSink = func() clipboardSink { return &fakeClipboard{} }
	t.Cleanup(func() { newClipboardSink = prev })

	_, err := execute(t, "extract", "--clipboard", "form.json")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "clipboard")
	assert.Empty(t, env.extract.refs)
}

func TestExtractCmd_WatchRejectsRemoteAndStdin(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "extract", "--watch", "https://docs.google.com/forms/d/e/x/viewform")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	resetFlags()
	_, err = execute(t, "extract", "--watch", "-")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtractCmd_NotConfigured(t *testing.T) {
	setupTestServices(t)
	SetServices(nil)

	_, err := execute(t, "extract", "form.json")

	assert.True(t, errors.Is(err, errNotConfigured))
}

func TestWriteSummary(t *testing.T) {
	e := sampleExtraction()
	fm := e.Fields
	fm.Set("entry.300", domain.EnumeratedEntry(nil))

	var out bytes.Buffer
	require.NoError(t, writeSummary(&out, e))

	text := out.String()
	assert.Contains(t, text, "3 fields from 2 questions (fast_path)")
	assert.Contains(t, text, "extraction ext-1")
	assert.Contains(t, text, "Yes | No")
	assert.Contains(t, text, "free text")
	assert.Contains(t, text, "(no options)")
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}
