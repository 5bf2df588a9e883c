// Package sanitize cleans user-supplied HTML before it is stored or rendered.
// Record descriptions accept a small whitelist of structural and inline
// elements; everything else is stripped.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// Description sanitizes rich-text record descriptions. Allowed markup covers
// paragraphs, lists, quotations, emphasis, and links with http, https, or
// mailto targets.
func Description(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	policy := descriptionSanitizer()
	return strings.TrimSpace(policy.Sanitize(trimmed))
}

func descriptionSanitizer() *bluemonday.Policy {
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"p", "blockquote", "ol", "ul", "li", "dl", "dt", "dd",
			"em", "strong", "q", "code", "i", "sup", "sub", "bdi",
			"br", "wbr",
		)
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowAttrs("title").OnElements("abbr")
		policy.AllowAttrs("dir").OnElements("bdo")
		policy.AllowElements("a", "abbr", "bdo")
		policy.AllowURLSchemes("http", "https", "mailto")
		policy.RequireParseableURLs(true)

		descriptionPolicy = policy
	})
	return descriptionPolicy
}
