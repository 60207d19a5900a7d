// core/lineage/lineage.go
package lineage

import "strings"

// A lineage is a ";"-separated string of rank-prefixed tokens, most general
// first, e.g. "d__Bacteria;p__Proteobacteria;c__Gammaproteobacteria".
// Tokens carry a single-letter rank code before a "__" separator.

// RankNames is the canonical rank order, most general first.
var RankNames = []string{"domain", "phylum", "class", "order", "family", "genus", "species"}

// codeToName translates the single-letter code of a token into the rank name
// used in summaries. "superkingdom" inputs are normalized to "d__" upstream
// (taxonomy loading), never here.
var codeToName = map[string]string{
	"d": "domain",
	"p": "phylum",
	"c": "class",
	"o": "order",
	"f": "family",
	"g": "genus",
	"s": "species",
}

// Tokens splits a lineage string into its rank tokens.
// An empty lineage yields nil; callers must guard against that.
func Tokens(lin string) []string {
	if lin == "" {
		return nil
	}
	return strings.Split(lin, ";")
}

// RankCode returns the single-letter rank code of a token (the part before
// the first "__"), or "" when the token has no rank prefix.
func RankCode(token string) string {
	i := strings.Index(token, "__")
	if i < 0 {
		return ""
	}
	return token[:i]
}

// RankName translates a rank code into its name, or "" for unknown codes.
func RankName(code string) string { return codeToName[code] }

// RankIndex returns the position of a rank name in RankNames, or
// len(RankNames) for names outside the canonical order. Used for sorting
// summary rows domain-first.
func RankIndex(name string) int {
	for i, r := range RankNames {
		if r == name {
			return i
		}
	}
	return len(RankNames)
}
