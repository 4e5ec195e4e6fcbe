package core

import "strings"

// summaryReplacer applies the summary substitutions. Each rule rewrites the
// input once and no replacement contains another rule's pattern, so a single
// pass over the string is equivalent to applying the rules in order.
var summaryReplacer = strings.NewReplacer(
	" ", "-",
	",", "",
	":", "",
	";", "",
	".", "",
	"ä", "ae",
	"Ä", "Ae",
	"ö", "oe",
	"Ö", "Oe",
	"ü", "ue",
	"Ü", "Ue",
	"ß", "ss",
)

// SanitizeSummary turns a free-text summary into the tail of a branch name:
// spaces become hyphens, the punctuation ",:;." is dropped and German umlauts
// and ß are transliterated. All other characters pass through unchanged.
func SanitizeSummary(summary string) string {
	return summaryReplacer.Replace(summary)
}
