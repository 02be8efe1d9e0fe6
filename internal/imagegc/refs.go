package imagegc

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// RefSet is a set of upload URLs
type RefSet map[string]struct{}

func NewRefSet(urls ...string) RefSet {
	s := make(RefSet, len(urls))
	for _, u := range urls {
		s.Add(u)
	}
	return s
}

func (s RefSet) Add(u string) {
	s[u] = struct{}{}
}

func (s RefSet) Has(u string) bool {
	_, ok := s[u]
	return ok
}

// Union adds every element of other to s
func (s RefSet) Union(other RefSet) {
	for u := range other {
		s.Add(u)
	}
}

// Minus returns the elements of s that are not in other
func (s RefSet) Minus(other RefSet) RefSet {
	out := make(RefSet)
	for u := range s {
		if !other.Has(u) {
			out.Add(u)
		}
	}
	return out
}

// Sorted returns the elements in lexical order
func (s RefSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for u := range s {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// matcher finds upload references in text. References are normalised to prefix+name so that
// absolute URLs pointing at the same upload path compare equal to relative ones.
//
// A name runs until whitespace, a quote, an angle bracket, a backslash, a query or a fragment.
// Both the raw and the percent-decoded name are recorded.
type matcher struct {
	prefix  string
	pattern *regexp.Regexp
}

func newMatcher(prefix string) *matcher {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	path := prefix
	if u, err := url.Parse(prefix); err == nil && u.Host != "" {
		path = u.Path
	}
	return &matcher{
		prefix:  prefix,
		pattern: regexp.MustCompile(regexp.QuoteMeta(path) + `([^\s"'<>?#\\]+)`),
	}
}

func (m *matcher) scan(text string, refs RefSet) {
	for _, match := range m.pattern.FindAllStringSubmatch(text, -1) {
		for _, name := range nameVariants(match[1]) {
			refs.Add(m.prefix + name)
		}
	}
}

// nameVariants returns the names a matched reference may stand for. Trailing sentence punctuation
// is dropped; a trailing ")" is ambiguous, so both readings are kept.
func nameVariants(raw string) []string {
	names := make([]string, 0, 4)
	add := func(n string) {
		if n == "" {
			return
		}
		for _, seen := range names {
			if seen == n {
				return
			}
		}
		names = append(names, n)
		if decoded, err := url.PathUnescape(n); err == nil && decoded != n {
			names = append(names, decoded)
		}
	}

	base := strings.TrimRight(raw, ".,;:!")
	add(base)
	if strings.HasSuffix(base, ")") {
		add(strings.TrimRight(base, ".,;:!)"))
	}
	return names
}

// extract scans the raw text and every decoded attribute value of content. Content that is not
// valid UTF-8 still gets the raw text scan; only the tokenizer pass is skipped.
func (m *matcher) extract(content string) RefSet {
	refs := make(RefSet)
	if content == "" {
		return refs
	}

	m.scan(content, refs)
	if !utf8.ValidString(content) {
		return refs
	}

	z := html.NewTokenizer(strings.NewReader(content))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return refs
		case html.StartTagToken, html.SelfClosingTagToken:
			_, hasAttr := z.TagName()
			for hasAttr {
				var val []byte
				_, val, hasAttr = z.TagAttr()
				m.scan(string(val), refs)
			}
		}
	}
}
