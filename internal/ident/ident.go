// Package ident builds opaque, time-salted identifiers: session tokens for a
// username and message ids for a list of fields.
//
// A token has the form "speakset.<hex>.native" and a message id the form
// "msg_<hex>", where <hex> is the lowercase, unpadded hex rendering of a
// 64-bit hash of the inputs joined with ":" and suffixed with the epoch
// milliseconds at generation time.
package ident

import (
	"strconv"
	"strings"

	"github.com/flarebyte/speakset-native/internal/digest"
)

const (
	CommandToken     = "token"
	CommandMessageID = "message_id"

	TokenPrefix     = "speakset."
	TokenSuffix     = ".native"
	MessageIDPrefix = "msg_"

	separator = ":"
)

// Generator produces identifiers. The zero value is not usable; use New.
type Generator struct {
	clock  Clock
	hasher digest.Hasher
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(g *Generator) { g.clock = c }
}

// WithHasher replaces the default hash.
func WithHasher(h digest.Hasher) Option {
	return func(g *Generator) { g.hasher = h }
}

// New returns a Generator using the system clock and the default hash
// unless overridden by opts.
func New(opts ...Option) *Generator {
	g := &Generator{clock: SystemClock{}, hasher: digest.New()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate dispatches a command line, without the program name, to the
// matching identifier. It requires a command and at least one value before
// looking at the command name.
func (g *Generator) Generate(args []string) (string, error) {
	if len(args) < 2 {
		return "", &UsageError{}
	}
	switch args[0] {
	case CommandToken:
		// Only the first value participates; the rest are ignored.
		return g.Token(args[1]), nil
	case CommandMessageID:
		return g.MessageID(args[1:]...), nil
	default:
		return "", &UnknownCommandError{Command: args[0]}
	}
}

// Token returns "speakset.<hex>.native" for username salted with the current
// time.
func (g *Generator) Token(username string) string {
	millis := g.clock.NowMillis()
	return TokenPrefix + g.Digest(Composite([]string{username}, millis)) + TokenSuffix
}

// MessageID returns "msg_<hex>" for values salted with the current time.
// With no values the hash input is just ":<millis>".
func (g *Generator) MessageID(values ...string) string {
	millis := g.clock.NowMillis()
	return MessageIDPrefix + g.Digest(Composite(values, millis))
}

// Digest hashes s and renders the value as lowercase hex.
func (g *Generator) Digest(s string) string {
	return digest.Hex(g.hasher.Sum64(s))
}

// HashName reports which hash the generator uses.
func (g *Generator) HashName() string { return g.hasher.Name() }

// Composite joins values with ":" and appends ":<millis>". This is the exact
// string that gets hashed.
func Composite(values []string, millis int64) string {
	var b strings.Builder
	b.WriteString(strings.Join(values, separator))
	b.WriteString(separator)
	b.WriteString(strconv.FormatInt(millis, 10))
	return b.String()
}
