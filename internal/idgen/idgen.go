// Package idgen produces identifiers for new records.
//
// GenerateID is short and roughly time-ordered; collisions are possible but
// unlikely at single-device volumes. GenerateUUID returns a random version 4
// UUID in the canonical 8-4-4-4-12 layout.
package idgen

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const suffixLen = 9

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// Generator builds identifiers from a clock and a random source.
type Generator struct {
	Now  func() time.Time
	Rand *rand.Rand
}

var defaultGenerator = Generator{}

// GenerateID returns a timestamp-prefixed identifier with a random suffix.
func GenerateID() string {
	return defaultGenerator.GenerateID()
}

// GenerateUUID returns a random (version 4) UUID string.
func GenerateUUID() string {
	return uuid.NewString()
}

// GenerateID returns the base-36 millisecond timestamp followed by a base-36
// random suffix.
func (g Generator) GenerateID() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	var b strings.Builder
	b.WriteString(strconv.FormatInt(now().UnixMilli(), 36))
	for i := 0; i < suffixLen; i++ {
		b.WriteByte(base36[g.intN(len(base36))])
	}
	return b.String()
}

func (g Generator) intN(n int) int {
	if g.Rand != nil {
		return g.Rand.IntN(n)
	}
	return rand.IntN(n)
}
