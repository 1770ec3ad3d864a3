package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFromGUID_Deterministic(t *testing.T) {
	guid := uuid.MustParse("6f1c2a4e-8d0b-4e55-9a1f-3c2b1d0e9f88")

	a := FromGUID(guid)
	b := FromGUID(guid)

	assert.Equal(t, a, b)
	assert.True(t, a.IsValid())
	assert.NotEqual(t, a, FromGUID(uuid.MustParse("6f1c2a4e-8d0b-4e55-9a1f-3c2b1d0e9f89")))
}

func TestVariant(t *testing.T) {
	base := FromGUID(uuid.MustParse("3f1c2b4a-0000-4000-8000-000000000010"))

	assert.Equal(t, base.Variant("Override"), base.Variant("Override"))
	assert.NotEqual(t, base.Variant("Override"), base.Variant("Default"))
	assert.NotEqual(t, base, base.Variant(""))
	assert.True(t, base.Variant("Override").IsValid())
}

func TestInvalid(t *testing.T) {
	assert.False(t, Invalid.IsValid())
	assert.Equal(t, "invalid", Invalid.String())
	assert.Equal(t, "00000007", ID(7).String())
}
