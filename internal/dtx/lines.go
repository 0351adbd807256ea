// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dtx

import "regexp"

// LineKind classifies a documentation body line for rewriting.
type LineKind int

const (
	// KindPlain lines are emitted unchanged.
	KindPlain LineKind = iota
	// KindFlag lines (<*name> or </name>) are dropped.
	KindFlag
	// KindMacrocode lines open or close a macrocode environment.
	KindMacrocode
	// KindComment lines start with the documentation comment marker.
	KindComment
)

func (k LineKind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindMacrocode:
		return "macrocode"
	case KindComment:
		return "comment"
	default:
		return "plain"
	}
}

// word matches one letter, digit or underscore in any script. RE2's \w is
// ASCII-only.
const word = `[\p{L}\p{N}_]`

var (
	reDocumentClass = regexp.MustCompile(`^\\documentclass(\[.+\])?\{` + word + `+?\}`)
	reBeginDocument = regexp.MustCompile(`\\begin\{document\}`)
	reDocInput      = regexp.MustCompile(`\\DocInput\{(\\)?` + word + `+\.dtx\}`)
	reEndDocument   = regexp.MustCompile(`\\end\{document\}`)
	reEndInput      = regexp.MustCompile(`^(% )?\\endinput`)

	reIfFalse = regexp.MustCompile(`^% \\iffalse.*$`)
	reFi      = regexp.MustCompile(`^% \\fi$`)

	reFlag      = regexp.MustCompile(`<(\*|/)` + word + `+>`)
	reMacrocode = regexp.MustCompile(`^%[ ]{4}(\\(begin|end))\{macrocode\}`)
	reComment   = regexp.MustCompile(`^%[ ]?`)
)

// rule pairs a line kind with its predicate. Rules are evaluated in order;
// the first match wins.
type rule struct {
	kind  LineKind
	match func(string) bool
}

var rules = []rule{
	{KindFlag, reFlag.MatchString},
	{KindMacrocode, reMacrocode.MatchString},
	{KindComment, reComment.MatchString},
}

// Classify returns the kind of a documentation body line.
func Classify(line string) LineKind {
	for _, r := range rules {
		if r.match(line) {
			return r.kind
		}
	}
	return KindPlain
}

// Rewrite applies the body rewrite rules to line. It returns false when the
// line is dropped from the output.
func Rewrite(line string) (string, bool) {
	switch Classify(line) {
	case KindFlag:
		return "", false
	case KindMacrocode:
		return reMacrocode.ReplaceAllString(line, "${1}{verbatim}"), true
	case KindComment:
		return reComment.ReplaceAllLiteralString(line, ""), true
	default:
		return line, true
	}
}
