// core/lca/lca.go
package lca

import (
	"strings"

	"sketchlca-core/lineage"
)

// Compute returns the longest prefix of rank tokens shared verbatim by every
// lineage, joined with ";", plus the rank code of the last agreeing token.
// Both results are "" when the input is empty or the lineages disagree at the
// very first (domain) position. Input order never affects the result.
func Compute(lineages []string) (string, string) {
	var split [][]string
	for _, lin := range lineages {
		if lin == "" {
			continue
		}
		split = append(split, lineage.Tokens(lin))
	}
	if len(split) == 0 {
		return "", ""
	}

	// Comparison cannot exceed the shallowest lineage.
	minLen := len(split[0])
	for _, toks := range split[1:] {
		if len(toks) < minLen {
			minLen = len(toks)
		}
	}

	var common []string
	for i := 0; i < minLen; i++ {
		val := split[0][i]
		agree := true
		for _, toks := range split[1:] {
			if toks[i] != val {
				agree = false
				break
			}
		}
		if !agree {
			break
		}
		common = append(common, val)
	}

	if len(common) == 0 {
		return "", ""
	}
	return strings.Join(common, ";"), lineage.RankCode(common[len(common)-1])
}
