package token

import (
	"pycheck/internal/source"
)

// Token represents a single trivia-level token with its location.
// Immutable value; the tokenizer does not retain it after yielding.
type Token struct {
	Kind Kind
	Span source.Span
}

// Start returns the byte offset where the token begins.
func (t Token) Start() uint32 { return t.Span.Start }

// End returns the byte offset just past the token.
func (t Token) End() uint32 { return t.Span.End }

// IsTrivia reports whether the token carries no syntactic weight.
func (t Token) IsTrivia() bool { return t.Kind.IsTrivia() }

// IsKeyword reports whether the token is a recognized keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }
