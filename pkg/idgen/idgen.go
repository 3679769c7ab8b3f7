// Package idgen provides ID generation utilities for the application.
// It covers globally unique session identifiers and the short random
// suffixes used to build in-page anchors.
package idgen

import (
	"crypto/rand"
	"fmt"
	mrand "math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"

	"github.com/rs/xid"
	"golang.org/x/text/unicode/norm"

	"github.com/verustcode/reportng/consts"
)

// anchorAlphabet is the character set of anchor suffixes
const anchorAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewID generates a new globally unique, sortable identifier.
// Returns a 20-character string using xid format.
func NewID() string {
	return xid.New().String()
}

// NewSessionID generates a unique ID for a report session.
func NewSessionID() string {
	return NewID()
}

// AnchorSource produces the suffix appended to anchor ids.
// Implementations must be safe for concurrent use.
type AnchorSource interface {
	// Suffix returns n alphanumeric characters
	Suffix(n int) string
}

// randomAnchors draws suffixes from crypto/rand
type randomAnchors struct{}

// NewRandomAnchors returns the default anchor source.
// Collisions are possible but improbable (62^5 values per title).
func NewRandomAnchors() AnchorSource {
	return randomAnchors{}
}

func (randomAnchors) Suffix(n int) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	// crypto/rand.Read never returns an error on supported platforms
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = anchorAlphabet[int(b)%len(anchorAlphabet)]
	}
	return string(buf)
}

// seededAnchors is a reproducible source for golden-file output
type seededAnchors struct {
	mu sync.Mutex
	r  *mrand.Rand
}

// NewSeededAnchors returns a deterministic anchor source. Two sources with
// the same seed produce the same sequence of suffixes.
func NewSeededAnchors(seed uint64) AnchorSource {
	return &seededAnchors{r: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededAnchors) Suffix(n int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteByte(anchorAlphabet[s.r.IntN(len(anchorAlphabet))])
	}
	return sb.String()
}

// counterAnchors yields zero padded sequence numbers
type counterAnchors struct {
	next atomic.Uint64
}

// NewCounterAnchors returns a source that never repeats within its lifetime.
// Suffixes are zero padded to the requested width and grow past it after
// 10^n calls.
func NewCounterAnchors() AnchorSource {
	return &counterAnchors{}
}

func (c *counterAnchors) Suffix(n int) string {
	v := c.next.Add(1)
	return fmt.Sprintf("%0*d", n, v)
}

// AnchorBase reduces a title to the characters allowed in anchors.
// Whitespace is removed; letters, digits, '-' and '_' are kept; anything
// else is dropped so the result works as an element id, a URL fragment
// and a jQuery selector. Titles are NFC normalized first.
func AnchorBase(title string) string {
	title = norm.NFC.String(title)
	var sb strings.Builder
	sb.Grow(len(title))
	for _, r := range title {
		switch {
		case unicode.IsSpace(r):
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// MakeAnchor builds an anchor id from a title and a random suffix.
func MakeAnchor(src AnchorSource, title string) string {
	if src == nil {
		src = NewRandomAnchors()
	}
	return AnchorBase(title) + src.Suffix(consts.AnchorSuffixLength)
}
