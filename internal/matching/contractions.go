package matching

import (
	"regexp"
	"sort"
)

// contraction maps a contracted form to its expanded phrases. The first
// phrase is the canonical expansion used when rewriting text; every phrase
// contracts back to the short form.
type contraction struct {
	short string
	full  []string
}

var contractions = []contraction{
	{"aren't", []string{"are not"}},
	{"can't", []string{"cannot", "can not"}},
	{"couldn't", []string{"could not"}},
	{"didn't", []string{"did not"}},
	{"doesn't", []string{"does not"}},
	{"don't", []string{"do not"}},
	{"gonna", []string{"going to"}},
	{"gotta", []string{"got to"}},
	{"hadn't", []string{"had not"}},
	{"hasn't", []string{"has not"}},
	{"haven't", []string{"have not"}},
	{"he'd", []string{"he would", "he had"}},
	{"he'll", []string{"he will"}},
	{"he's", []string{"he is", "he has"}},
	{"i'd", []string{"i would", "i had"}},
	{"i'll", []string{"i will"}},
	{"i'm", []string{"i am"}},
	{"i've", []string{"i have"}},
	{"isn't", []string{"is not"}},
	{"it's", []string{"it is", "it has"}},
	{"let's", []string{"let us"}},
	{"mustn't", []string{"must not"}},
	{"she'd", []string{"she would", "she had"}},
	{"she'll", []string{"she will"}},
	{"she's", []string{"she is", "she has"}},
	{"shouldn't", []string{"should not"}},
	{"that's", []string{"that is"}},
	{"there's", []string{"there is"}},
	{"they'd", []string{"they would", "they had"}},
	{"they'll", []string{"they will"}},
	{"they're", []string{"they are"}},
	{"they've", []string{"they have"}},
	{"wanna", []string{"want to"}},
	{"wasn't", []string{"was not"}},
	{"we'd", []string{"we would", "we had"}},
	{"we'll", []string{"we will"}},
	{"we're", []string{"we are"}},
	{"we've", []string{"we have"}},
	{"weren't", []string{"were not"}},
	{"what's", []string{"what is"}},
	{"who's", []string{"who is"}},
	{"won't", []string{"will not"}},
	{"wouldn't", []string{"would not"}},
	{"you'd", []string{"you would", "you had"}},
	{"you'll", []string{"you will"}},
	{"you're", []string{"you are"}},
	{"you've", []string{"you have"}},
}

type rewriteRule struct {
	re          *regexp.Regexp
	replacement string
}

var (
	expandRules   []rewriteRule
	contractRules []rewriteRule
)

func init() {
	// Whole-word, case-insensitive substitution only, so unrelated text is
	// never corrupted.
	for _, c := range contractions {
		expandRules = append(expandRules, rewriteRule{
			re:          regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(c.short) + `\b`),
			replacement: c.full[0],
		})
	}

	// Contract longer phrases first so "can not" is taken before "not" could
	// ever be touched by an overlapping rule.
	type phrase struct {
		full  string
		short string
	}
	var phrases []phrase
	for _, c := range contractions {
		for _, f := range c.full {
			phrases = append(phrases, phrase{full: f, short: c.short})
		}
	}
	sort.Slice(phrases, func(i, j int) bool {
		return len(phrases[i].full) > len(phrases[j].full)
	})
	for _, p := range phrases {
		contractRules = append(contractRules, rewriteRule{
			re:          regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p.full) + `\b`),
			replacement: p.short,
		})
	}
}

// ExpandContractions rewrites every contracted form in s to its canonical
// expansion ("it's" -> "it is").
func ExpandContractions(s string) string {
	for _, r := range expandRules {
		s = r.re.ReplaceAllString(s, r.replacement)
	}
	return s
}

// ContractPhrases rewrites every expandable phrase in s to its contracted
// form ("do not" -> "don't").
func ContractPhrases(s string) string {
	for _, r := range contractRules {
		s = r.re.ReplaceAllString(s, r.replacement)
	}
	return s
}
