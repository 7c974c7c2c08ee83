// Package abtest assigns downsell experiment variants to users.
package abtest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"cancelflow-be/internal/entity"
)

const (
	PolicyDeterministic = "deterministic"
	PolicyRandom        = "random"
)

// Assigner picks the downsell variant for a user that has no cancellation record yet.
type Assigner interface {
	Assign(userId string) entity.DownsellVariant
	Policy() string
}

// HashAssigner derives the variant from SHA-256(userId): the last hex digit decides,
// even -> A, odd -> B. The same user always lands in the same bucket.
type HashAssigner struct{}

func NewHashAssigner() *HashAssigner {
	return &HashAssigner{}
}

// Assign lower-cases userId before hashing, so every spelling of one UUID shares a bucket.
// Hashing the raw id would put "ABC..." and "abc..." in different buckets.
func (HashAssigner) Assign(userId string) entity.DownsellVariant {
	sum := sha256.Sum256([]byte(strings.ToLower(userId)))
	digest := hex.EncodeToString(sum[:])

	last := digest[len(digest)-1]
	var value byte
	if last >= 'a' {
		value = last - 'a' + 10
	} else {
		value = last - '0'
	}

	if value%2 == 0 {
		return entity.DownsellVariantA
	}
	return entity.DownsellVariantB
}

func (HashAssigner) Policy() string {
	return PolicyDeterministic
}

// RandomAssigner draws A or B uniformly on every call. Repeat visits keep their first
// variant only because the service returns the existing record before assigning.
type RandomAssigner struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomAssigner(rng *rand.Rand) *RandomAssigner {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &RandomAssigner{rng: rng}
}

func (a *RandomAssigner) Assign(string) entity.DownsellVariant {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.rng.IntN(2) == 0 {
		return entity.DownsellVariantA
	}
	return entity.DownsellVariantB
}

func (a *RandomAssigner) Policy() string {
	return PolicyRandom
}

// New returns the assigner for a configured policy name.
func New(policy string) (Assigner, error) {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case "", PolicyDeterministic:
		return NewHashAssigner(), nil
	case PolicyRandom:
		return NewRandomAssigner(nil), nil
	default:
		return nil, fmt.Errorf("unknown variant policy %q", policy)
	}
}
