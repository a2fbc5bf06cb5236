package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict   *bluemonday.Policy
	ugc      *bluemonday.Policy
	initOnce sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strict = bluemonday.StrictPolicy()

		ugc = bluemonday.NewPolicy()
		ugc.AllowStandardURLs()
		ugc.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		ugc.AllowAttrs("href").OnElements("a")
		ugc.RequireNoFollowOnLinks(true)
	})
}

// Strip removes all HTML and returns plain text. Use it on field input that
// must never carry markup.
func Strip(s string) string {
	initPolicies()
	return strict.Sanitize(s)
}

// UGC keeps basic formatting tags (paragraphs, emphasis, lists, code,
// nofollow links) and removes everything dangerous. Use it for free-text
// fields that allow light markup.
func UGC(s string) string {
	initPolicies()
	return ugc.Sanitize(s)
}

// Custom applies a caller-provided bluemonday policy. A nil policy returns
// the input unchanged.
func Custom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
