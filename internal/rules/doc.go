// Package rules implements the style checks built on the trivia scanner.
//
// Every rule is a pure function over an immutable source.File that emits
// findings through a diag.Reporter. Rules never mutate files; automated
// corrections are attached as diag.Fix records and applied by internal/fix.
//
// The scanner deliberately refuses to interpret most of Python (Other/Bogus
// tokens), so each rule works only within the region it can classify: the
// keyword-adjacency check restarts at every physical line and stops at the
// first unclassifiable token, the blank-line checks count line terminators
// which stay exact even in Bogus regions.
package rules
