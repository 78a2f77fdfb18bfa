package diag

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSetsCorrelationID(t *testing.T) {
	e := New(BadGame, "app id mismatch")
	assert.NotEmpty(t, e.CorrelationID)
	assert.Equal(t, BadGame, e.Kind)
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("boom")
	e := Wrap(SocketRecv, "recv failed", cause)
	assert.Same(t, cause, errors.Unwrap(e))
}

func TestAttachChains(t *testing.T) {
	e := New(Parse, "bad field").Attach("section", "INFO").Attach("field", "app_id")
	require.Len(t, e.Attachments, 2)
	assert.Equal(t, "section", e.Attachments[0].Label)
	assert.Equal(t, "field", e.Attachments[1].Label)
}

func TestAttachHexDumpTruncates(t *testing.T) {
	data := make([]byte, 128)
	e := New(SanityCheck, "bad header").AttachHexDump("payload", data, 4)
	require.Len(t, e.Attachments, 1)
	assert.Contains(t, e.Attachments[0].Value, "...")
	assert.Contains(t, e.Attachments[0].Value, "cursor=4")
}

func TestIsFollowsWrapChain(t *testing.T) {
	base := New(BufferOutOfRange, "cursor past end")
	wrapped := fmt.Errorf("reading field: %w", base)
	assert.True(t, Is(wrapped, BufferOutOfRange))
	assert.False(t, Is(wrapped, BadGame))
}

func TestKindStringCoversAllValues(t *testing.T) {
	for k := InvalidInput; k <= BufferInvalidLatin1; k++ {
		assert.NotEqual(t, "Unknown", k.String())
	}
}
