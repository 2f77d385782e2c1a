package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weisyn/privacyzk/pkg/curve"
)

func TestChallengeIsDeterministic(t *testing.T) {
	build := func() curve.Scalar {
		b := New("TEST_DOMAIN")
		b.WriteBytes([]byte("ab"))
		b.WriteBytes([]byte("cd"))
		return b.Challenge()
	}
	c1 := build()
	c2 := build()
	assert.True(t, c1.Equal(c2))
}

func TestChallengeDiffersOnFieldBoundaryShift(t *testing.T) {
	// "ab","cd" concatenates to the same raw bytes as "a","bcd" or
	// "abc","d" — length-prefixing must keep these challenges distinct.
	b1 := New("TEST_DOMAIN")
	b1.WriteBytes([]byte("ab"))
	b1.WriteBytes([]byte("cd"))
	c1 := b1.Challenge()

	b2 := New("TEST_DOMAIN")
	b2.WriteBytes([]byte("a"))
	b2.WriteBytes([]byte("bcd"))
	c2 := b2.Challenge()

	b3 := New("TEST_DOMAIN")
	b3.WriteBytes([]byte("abc"))
	b3.WriteBytes([]byte("d"))
	c3 := b3.Challenge()

	assert.False(t, c1.Equal(c2))
	assert.False(t, c1.Equal(c3))
	assert.False(t, c2.Equal(c3))
}

func TestChallengeDiffersOnDomainSeparator(t *testing.T) {
	b1 := New("DOMAIN_A")
	b1.WriteBytes([]byte("x"))
	c1 := b1.Challenge()

	b2 := New("DOMAIN_B")
	b2.WriteBytes([]byte("x"))
	c2 := b2.Challenge()

	assert.False(t, c1.Equal(c2))
}
