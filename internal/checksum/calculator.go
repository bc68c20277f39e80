package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strings"
	"unicode"
)

// Calculator computes content checksums.
type Calculator interface {
	// CalculateRaw computes a checksum of the unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum that ignores comments and
	// whitespace layout.
	CalculateNormalized(content []byte) string
}

// SHA256 implements Calculator with SHA-256. It is a zero-size value type.
type SHA256 struct{}

// New creates a SHA-256 calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// CalculateNormalized computes SHA-256 of normalized content.
func (c SHA256) CalculateNormalized(content []byte) string {
	sum := sha256.Sum256([]byte(c.normalize(string(content))))
	return hex.EncodeToString(sum[:])
}

// normalize strips comments and collapses every whitespace run to one space.
// Case is kept: identifiers in JavaScript are case-sensitive.
func (c SHA256) normalize(content string) string {
	cleaned := c.removeComments(content)

	var b strings.Builder
	b.Grow(len(cleaned))

	lastWasSpace := false
	for _, r := range cleaned {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				b.WriteByte(' ')
				lastWasSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastWasSpace = false
	}

	return strings.TrimSpace(b.String())
}

type lexState int

const (
	stNormal lexState = iota
	stLineComment
	stBlockComment
	stString
)

// removeComments drops // and /* */ comments while keeping quoted and
// template strings intact. Block comments do not nest. A comment is replaced
// by a single space so tokens on either side stay apart.
func (c SHA256) removeComments(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	state := stNormal
	var quote byte

	for i := 0; i < len(content); i++ {
		ch := content[i]
		var next byte
		if i+1 < len(content) {
			next = content[i+1]
		}

		switch state {
		case stNormal:
			switch {
			case ch == '/' && next == '/':
				state = stLineComment
				b.WriteByte(' ')
				i++
			case ch == '/' && next == '*':
				state = stBlockComment
				b.WriteByte(' ')
				i++
			case ch == '\'' || ch == '"' || ch == '`':
				state = stString
				quote = ch
				b.WriteByte(ch)
			default:
				b.WriteByte(ch)
			}

		case stLineComment:
			if ch == '\n' {
				b.WriteByte(ch)
				state = stNormal
			}

		case stBlockComment:
			if ch == '*' && next == '/' {
				state = stNormal
				i++
			}

		case stString:
			b.WriteByte(ch)
			switch {
			case ch == '\\' && i+1 < len(content):
				b.WriteByte(next)
				i++
			case ch == quote:
				state = stNormal
			case ch == '\n' && quote != '`':
				// unterminated literal; recover at end of line
				state = stNormal
			}
		}
	}

	return b.String()
}

// Fingerprint accumulates per-file normalized hashes into one digest. Files
// must be added in a stable order for the digest to be reproducible.
type Fingerprint struct {
	calc  SHA256
	h     hash.Hash
	files int
}

// NewFingerprint creates an empty Fingerprint.
func NewFingerprint() *Fingerprint {
	return &Fingerprint{calc: New(), h: sha256.New()}
}

// Add folds one file into the digest.
func (f *Fingerprint) Add(relPath string, content []byte) {
	f.h.Write([]byte(relPath))
	f.h.Write([]byte{0})
	f.h.Write([]byte(f.calc.CalculateNormalized(content)))
	f.h.Write([]byte{'\n'})
	f.files++
}

// Files returns how many files were added.
func (f *Fingerprint) Files() int {
	return f.files
}

// Sum returns the hex digest of everything added so far.
func (f *Fingerprint) Sum() string {
	return hex.EncodeToString(f.h.Sum(nil))
}
