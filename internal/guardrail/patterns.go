package guardrail

import "regexp"

// topicPattern is one entry in the fast-path tables. The tables are data on
// purpose: tests assert classifications per pattern so regressions show up
// as fixture failures rather than silent routing changes.
type topicPattern struct {
	name string
	re   *regexp.Regexp
}

// disallowedPatterns are keyword recognizers for restricted topics. A hit
// does not block by itself; it only disqualifies the fast path and forces
// full classification.
var disallowedPatterns = []topicPattern{
	{"legal_action", regexp.MustCompile(`(?i)\b(sue|suing|lawsuit|lawyer|attorney|legal (?:action|advice|rights)|liabilit\w*)\b`)},
	{"medical", regexp.MustCompile(`(?i)\b(symptoms?|diagnos(?:e|is|ed)|medication|prescri(?:be|ption)|treatment for|medical advice|i feel sick)\b`)},
	{"pricing_negotiation", regexp.MustCompile(`(?i)\b(discount|lower (?:the )?(?:price|rate)|cheaper (?:price|rate)|price match|negotiat\w*|best price)\b`)},
	{"financial_advice", regexp.MustCompile(`(?i)\b(invest(?:ing|ment)?|stocks?|crypto(?:currency)?|financial advice|manage my money)\b`)},
	{"political", regexp.MustCompile(`(?i)\b(politic\w*|election|vote for|left.wing|right.wing)\b`)},
	{"hacking", regexp.MustCompile(`(?i)\b(hack(?:ing|ed)?|exploit|bypass(?:ing)? (?:the )?security|crack(?:ing)? (?:the )?(?:password|wifi|lock))\b`)},
	{"prompt_injection", regexp.MustCompile(`(?i)(ignore (?:all |the )?(?:previous|above|prior) instructions|disregard (?:your|the|all) (?:instructions|rules)|system prompt|you are now|pretend (?:to be|you are))`)},
	{"guest_privacy", regexp.MustCompile(`(?i)\b(?:other|another) guests?\b.*\b(name|room|number|contact|staying|info)\b`)},
}

// safePatterns recognize the mundane property questions that make up most
// real traffic. Checked only after no disallowed pattern matched.
var safePatterns = []topicPattern{
	{"check_in_out", regexp.MustCompile(`(?i)\bcheck.?(?:in|out)\b`)},
	{"amenities", regexp.MustCompile(`(?i)\b(amenit(?:y|ies)|wi.?fi|internet|pool|gym|breakfast|towels?|air.?con\w*|heating|laundry|kitchen|coffee)\b`)},
	{"parking", regexp.MustCompile(`(?i)\b(parking|park (?:my|the|a) car|garage)\b`)},
	{"property", regexp.MustCompile(`(?i)\b(room|bed(?:room)?s?|bathroom|balcony|view|floor|apartment|house|property|elevator|lift)\b`)},
	{"policies", regexp.MustCompile(`(?i)\b(polic(?:y|ies)|pets?|dogs?|cats?|smok(?:e|ing)|cancel(?:lation)?|quiet hours|house rules)\b`)},
	{"directions", regexp.MustCompile(`(?i)\b(directions?|how (?:do i|to) get|address|located|location|nearby|restaurants?|attractions?|airport|station)\b`)},
	{"reservation", regexp.MustCompile(`(?i)\b(reservation|booking|my stay|confirmation|arriv(?:e|al|ing)|depart(?:ure|ing)?)\b`)},
	{"greeting", regexp.MustCompile(`(?i)^\s*(hi|hello|hey|good (?:morning|afternoon|evening)|thanks|thank you)\b`)},
}

// matchDisallowed returns the name of the first disallowed pattern that
// matches, or "".
func matchDisallowed(text string) string {
	for _, p := range disallowedPatterns {
		if p.re.MatchString(text) {
			return p.name
		}
	}
	return ""
}

func matchSafe(text string) string {
	for _, p := range safePatterns {
		if p.re.MatchString(text) {
			return p.name
		}
	}
	return ""
}
