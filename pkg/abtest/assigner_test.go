package abtest

import (
	"math/rand/v2"
	"testing"

	"cancelflow-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAssigner_KnownUsers(t *testing.T) {
	a := NewHashAssigner()

	// sha256 digests end in 'c' and '9' respectively
	assert.Equal(t, entity.DownsellVariantA, a.Assign("550e8400-e29b-41d4-a716-446655440001"))
	assert.Equal(t, entity.DownsellVariantB, a.Assign("550e8400-e29b-41d4-a716-446655440004"))
}

func TestHashAssigner_IsStable(t *testing.T) {
	a := NewHashAssigner()
	userId := "550e8400-e29b-41d4-a716-446655440001"

	first := a.Assign(userId)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, a.Assign(userId))
	}
	assert.Equal(t, first, NewHashAssigner().Assign(userId))
	assert.Equal(t, first, a.Assign("550E8400-E29B-41D4-A716-446655440001"))
}

func TestHashAssigner_Distribution(t *testing.T) {
	a := NewHashAssigner()
	const samples = 20000

	countA := 0
	for i := 0; i < samples; i++ {
		if a.Assign(uuid.NewString()) == entity.DownsellVariantA {
			countA++
		}
	}

	ratio := float64(countA) / samples
	assert.InDelta(t, 0.5, ratio, 0.03)
}

func TestRandomAssigner_Distribution(t *testing.T) {
	a := NewRandomAssigner(rand.New(rand.NewPCG(1, 2)))
	const samples = 20000

	countA := 0
	for i := 0; i < samples; i++ {
		if a.Assign("ignored") == entity.DownsellVariantA {
			countA++
		}
	}

	assert.InDelta(t, 0.5, float64(countA)/samples, 0.03)
}

func TestNew(t *testing.T) {
	a, err := New("")
	require.NoError(t, err)
	assert.Equal(t, PolicyDeterministic, a.Policy())

	a, err = New("Random")
	require.NoError(t, err)
	assert.Equal(t, PolicyRandom, a.Policy())

	_, err = New("weighted")
	assert.Error(t, err)
}
