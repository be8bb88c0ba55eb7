package workflow

import (
	"regexp"
	"sort"
	"strings"
)

// MessageDraft is an outgoing message being assembled. ResolvedRecipient is
// set only after contact disambiguation succeeds.
type MessageDraft struct {
	RecipientQuery    string
	ResolvedRecipient string
	Body              string
}

var messagePatternRe = regexp.MustCompile(`(?i)\bsend\s+(?:a\s+)?message\s+to\s+([A-Za-z]+)[,:\-]?\s*(.*)$`)

// ExtractMessageParts pulls recipient and body out of a
// "send (a) message to <recipient> <body>" line. ok is false when the line
// does not match, in which case the caller falls back to interactive prompts.
func ExtractMessageParts(line string) (recipient, body string, ok bool) {
	m := messagePatternRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// ResolveContacts filters the contact catalog to names where any
// whitespace-delimited token starts with the query (case-insensitive).
// Matches whose full name starts with the query rank before matches that only
// hit on a later token; ties break on case-insensitive full-string order.
func ResolveContacts(query string, contacts []string) []string {
	q := strings.ToLower(query)
	if q == "" {
		return nil
	}

	var matches []string
	for _, name := range contacts {
		for _, token := range strings.Fields(strings.ToLower(name)) {
			if strings.HasPrefix(token, q) {
				matches = append(matches, name)
				break
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		li, lj := strings.ToLower(matches[i]), strings.ToLower(matches[j])
		si, sj := strings.HasPrefix(li, q), strings.HasPrefix(lj, q)
		if si != sj {
			return si
		}
		return li < lj
	})
	return matches
}
