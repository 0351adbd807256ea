// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dtx

// Pair is one conditional-hiding block: the 0-indexed lines of its
// `% \iffalse` opener and matching `% \fi` closer.
type Pair struct {
	IfFalse int
	Fi      int
}

// ScanConditionals collects opener and closer line indices in [0, end).
// A closer is accepted only while an opener is outstanding; the body may
// contain `% \fi` lines that close unrelated \if conditionals.
func ScanConditionals(lines []string, end int) (openers, closers []int) {
	end = min(end, len(lines))
	for i := 0; i < end; i++ {
		if reIfFalse.MatchString(lines[i]) {
			openers = append(openers, i)
		}
		if reFi.MatchString(lines[i]) && len(closers) < len(openers) {
			closers = append(closers, i)
		}
	}
	return openers, closers
}

// MatchPairs zips openers with closers. When closers run short it returns
// the complete pairs together with an *UnbalancedError.
func MatchPairs(openers, closers []int) ([]Pair, error) {
	n := min(len(openers), len(closers))
	pairs := make([]Pair, n)
	for i := range n {
		pairs[i] = Pair{IfFalse: openers[i], Fi: closers[i]}
	}
	if len(closers) < len(openers) {
		return pairs, &UnbalancedError{Openers: len(openers), Closers: len(closers)}
	}
	return pairs, nil
}
