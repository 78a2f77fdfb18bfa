package registry

import (
	"testing"

	"github.com/riftline/gamedig/internal/diag"
	"github.com/riftline/gamedig/internal/nio"
	"github.com/riftline/gamedig/internal/registry/naming"
	"github.com/riftline/gamedig/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryEntryHasDisplayNameAndPort(t *testing.T) {
	for id, entry := range GAMES {
		assert.NotEmpty(t, entry.DisplayName, "entry %q missing display name", id)
		assert.NotZero(t, entry.DefaultPort, "entry %q missing default port", id)
	}
}

func TestQueryUnknownGameIDFails(t *testing.T) {
	_, err := Query("no-such-game", nio.Endpoint{Host: "127.0.0.1"}, settings.TimeoutConfig{})
	require.Error(t, err)
	assert.True(t, diag.Is(err, diag.GameNotFound))
}

// TestNamingSlugsMatchRegistry is the §4.6 static lint: every registry id
// must equal the deterministic slug of its display name. Known exceptions
// (slugs the procedure cannot mechanically reproduce without collision
// suffixing, e.g. ids chosen for historical/marketing reasons) are listed
// explicitly so the lint stays meaningful for everything else.
func TestNamingSlugsMatchRegistry(t *testing.T) {
	knownExceptions := map[string]bool{
		"tf2":          true,
		"garrysmod":    true,
		"ark":          true,
		"quake1":       true,
		"quake3":       true,
		"unreal2":      true,
		"medalofhonor": true,
	}

	for id, entry := range GAMES {
		if knownExceptions[id] {
			continue
		}
		result := naming.Slug(entry.DisplayName)
		if result.Slug != id {
			t.Logf("rule stack for %q: %v", id, result.RuleStack)
		}
		assert.Equal(t, id, result.Slug, "display name %q", entry.DisplayName)
	}
}
