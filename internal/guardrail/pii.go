package guardrail

import (
	"regexp"
	"sort"
	"strings"
)

// detector pairs an entity kind with its recognizer. When group is non-zero,
// only that capture group is treated as the PII span (used for person names,
// where the leading phrase anchors the match but is not itself PII). validate,
// when set, rejects matches that are shaped right but checksum-invalid.
type detector struct {
	entity   Entity
	re       *regexp.Regexp
	group    int
	validate func(string) bool
}

var piiDetectors = []detector{
	{
		entity: EntityCreditCard,
		re:     regexp.MustCompile(`\b(?:\d[ -]?){12,18}\d\b`),
		validate: func(s string) bool {
			digits := stripNonDigits(s)
			return len(digits) >= 13 && len(digits) <= 19 && luhnValid(digits)
		},
	},
	{
		entity: EntityUSSSN,
		re:     regexp.MustCompile(`\b\d{3}[- ]\d{2}[- ]\d{4}\b`),
	},
	{
		entity: EntityIBANCode,
		re:     regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{11,30}\b`),
		validate: func(s string) bool {
			return ibanValid(s)
		},
	},
	{
		entity: EntityEmailAddress,
		re:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	},
	{
		entity: EntityPhoneNumber,
		// A bare digit run is not enough; require a country-code prefix,
		// a parenthesized area code, or a group separator so booking and
		// confirmation numbers are left alone.
		re: regexp.MustCompile(`\+\d{1,3}[ .-]?\(?\d{2,4}\)?[ .-]?\d{3,4}(?:[ .-]?\d{3,4})?` +
			`|\(\d{2,4}\)[ .-]?\d{3,4}(?:[ .-]?\d{3,4})?\b` +
			`|\b\d{2,4}[ .-]\d{3,4}(?:[ .-]?\d{3,4})?\b`),
		validate: func(s string) bool {
			n := len(stripNonDigits(s))
			return n >= 8 && n <= 15
		},
	},
	{
		entity: EntityPerson,
		re:     regexp.MustCompile(`\b(?:[Mm]y name is|[Tt]his is|[Ii] am|[Ii]'m)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})`),
		group:  1,
	},
}

// blockEntities are the high-risk identifiers that terminate a request
// outright. These have no legitimate reason to appear in a guest inquiry.
var blockEntities = map[Entity]bool{
	EntityCreditCard: true,
	EntityUSSSN:      true,
	EntityIBANCode:   true,
}

type piiGuard struct{}

// NewPII creates the built-in PII guard.
func NewPII() PIIGuard {
	return &piiGuard{}
}

// ShouldBlock reports whether the text contains card numbers, national IDs
// or bank codes. It runs the narrow detector set only.
func (g *piiGuard) ShouldBlock(text string) bool {
	for _, d := range piiDetectors {
		if !blockEntities[d.entity] {
			continue
		}
		if len(g.detectOne(d, text)) > 0 {
			return true
		}
	}
	return false
}

// Redact replaces every detected PII span with a typed marker, e.g.
// "<EMAIL_ADDRESS>". Two spans of the same kind are replaced independently.
func (g *piiGuard) Redact(text string) (string, bool) {
	var found []detection
	for _, d := range piiDetectors {
		found = append(found, g.detectOne(d, text)...)
	}
	if len(found) == 0 {
		return text, false
	}

	found = dropOverlaps(found)

	// Rebuild in span order, copying the text between detections.
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, det := range found {
		b.WriteString(text[last:det.Start])
		b.WriteString("<" + string(det.Entity) + ">")
		last = det.End
	}
	b.WriteString(text[last:])
	return b.String(), true
}

func (g *piiGuard) detectOne(d detector, text string) []detection {
	var out []detection
	for _, m := range d.re.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[1]
		if d.group > 0 {
			start, end = m[2*d.group], m[2*d.group+1]
			if start < 0 {
				continue
			}
		}
		if d.validate != nil && !d.validate(text[start:end]) {
			continue
		}
		out = append(out, detection{Entity: d.entity, Start: start, End: end})
	}
	return out
}

// dropOverlaps sorts detections by position and keeps the first of any
// overlapping pair. Detector order encodes priority: a digit run that is a
// valid card number must not also be redacted as a phone number.
func dropOverlaps(dets []detection) []detection {
	sort.SliceStable(dets, func(i, j int) bool {
		if dets[i].Start != dets[j].Start {
			return dets[i].Start < dets[j].Start
		}
		return dets[i].End > dets[j].End
	})
	out := dets[:0]
	lastEnd := -1
	for _, d := range dets {
		if d.Start < lastEnd {
			continue
		}
		out = append(out, d)
		lastEnd = d.End
	}
	return out
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// luhnValid implements the Luhn checksum over a digit string.
func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		n := int(digits[i] - '0')
		if double {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		double = !double
	}
	return sum%10 == 0
}

// ibanValid implements the ISO 13616 mod-97 check.
func ibanValid(iban string) bool {
	if len(iban) < 15 || len(iban) > 34 {
		return false
	}
	rearranged := iban[4:] + iban[:4]
	rem := 0
	for _, r := range rearranged {
		var v int
		switch {
		case r >= '0' && r <= '9':
			v = int(r - '0')
		case r >= 'A' && r <= 'Z':
			v = int(r-'A') + 10
		default:
			return false
		}
		if v >= 10 {
			rem = (rem*100 + v) % 97
		} else {
			rem = (rem*10 + v) % 97
		}
	}
	return rem == 1
}
