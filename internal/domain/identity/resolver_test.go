package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testDirectory() StaticDirectory {
	return StaticDirectory{
		{ID: "u1", Name: "Gabriel M.", Initials: "GM", Email: "gabriel@example.com", Role: RoleAdmin},
		{ID: "u2", Name: "Ana Costa", Initials: "AC", Email: "ana@example.com", Role: RoleUser},
	}
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(testDirectory())

	t.Run("empty input is anonymous", func(t *testing.T) {
		k := r.Resolve("   ")

		assert.True(t, k.IsAnonymous())
		assert.Equal(t, KeyAnonymous, k.Kind())
		assert.Equal(t, "", k.String())
	})

	t.Run("matches initials case-insensitively", func(t *testing.T) {
		k := r.Resolve(" gm ")

		assert.Equal(t, "GM", k.String())
		assert.Equal(t, KeyRegistered, k.Kind())
	})

	t.Run("matches email", func(t *testing.T) {
		k := r.Resolve("Ana@Example.com")

		assert.Equal(t, "AC", k.String())
		assert.Equal(t, KeyRegistered, k.Kind())
	})

	t.Run("matches id", func(t *testing.T) {
		assert.Equal(t, "GM", r.Resolve("u1").String())
	})

	t.Run("falls back to ad-hoc key", func(t *testing.T) {
		k := r.Resolve("zz")

		assert.Equal(t, "ZZ", k.String())
		assert.Equal(t, KeyAdHoc, k.Kind())
	})

	t.Run("is idempotent", func(t *testing.T) {
		for _, raw := range []string{"gm", "ana@example.com", "u2", "zz", ""} {
			once := r.Resolve(raw)
			assert.Equal(t, once, r.Resolve(once.String()), raw)
		}
	})

	t.Run("nil directory yields ad-hoc keys", func(t *testing.T) {
		k := NewResolver(nil).Resolve("gm")

		assert.Equal(t, "GM", k.String())
		assert.Equal(t, KeyAdHoc, k.Kind())
	})
}

func TestResolver_ResolveAll(t *testing.T) {
	r := NewResolver(testDirectory())

	keys := r.ResolveAll([]string{"gm", "", "gabriel@example.com", "ac", "zz"})

	assert.Equal(t, []string{"GM", "AC", "ZZ"}, keys)
}

func TestParticipantKey_Matches(t *testing.T) {
	k := AdHocKey("gm")

	assert.True(t, k.Matches(" GM"))
	assert.False(t, k.Matches("AC"))
	assert.False(t, Anonymous.Matches(""))
	assert.Equal(t, "ad_hoc", k.Kind().String())
}
