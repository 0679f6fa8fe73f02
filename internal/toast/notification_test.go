package toast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindIsValid(t *testing.T) {
	assert.True(t, KindTemporary.IsValid())
	assert.True(t, KindPermanent.IsValid())
	assert.False(t, Kind("sticky").IsValid())
	assert.False(t, Kind("").IsValid())
}

func TestClampTTL(t *testing.T) {
	assert.Equal(t, 1, ClampTTL(0, MinTTLSeconds, MaxTTLSeconds))
	assert.Equal(t, 1, ClampTTL(-4, MinTTLSeconds, MaxTTLSeconds))
	assert.Equal(t, 12, ClampTTL(12, MinTTLSeconds, MaxTTLSeconds))
	assert.Equal(t, 30, ClampTTL(99, MinTTLSeconds, MaxTTLSeconds))
}

func TestDismissalKey(t *testing.T) {
	assert.Equal(t, "closed_1712345678901", DismissalKey(1712345678901))

	id, ok := ParseDismissalKey("closed_42")
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = ParseDismissalKey("open_42")
	assert.False(t, ok)
	_, ok = ParseDismissalKey("closed_abc")
	assert.False(t, ok)
}

func TestNotificationHelpers(t *testing.T) {
	n := Notification{Kind: KindPermanent, Title: "  "}
	assert.True(t, n.IsPermanent())
	assert.False(t, n.HasTitle())
	assert.True(t, n.ExpiresAt().IsZero())
}
