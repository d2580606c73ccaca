package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Language of a heading fragment
type Language int

const (
	Dutch Language = iota
	French
)

// LanguageRules holds indicator words used to correct misapplied lang
// attributes. Indicators are lowercase substrings.
type LanguageRules struct {
	French []string // Found in an NL-tagged span, the span is really French
	Dutch  []string // Found in an FR-tagged span, the span is really Dutch
}

// HeadingText is the Dutch and French text of one sub-heading
type HeadingText struct {
	NL string
	FR string
}

// Empty reports whether neither language carries text
func (h HeadingText) Empty() bool {
	return h.NL == "" && h.FR == ""
}

// Detect guesses the language of untagged text
func (r LanguageRules) Detect(text string) Language {
	if containsAny(strings.ToLower(text), r.French) {
		return French
	}
	return Dutch
}

// SplitHeading separates the Dutch and French text of a sub-heading. The
// last span tagged with each language is used; its language is swapped when
// its text carries indicator words of the other language. A heading without
// any tagged span is classified as a whole.
func SplitHeading(n *html.Node, rules LanguageRules) HeadingText {
	var nlSpan, frSpan *html.Node
	for _, span := range FindAll(n, func(x *html.Node) bool { return IsElement(x, atom.Span) }) {
		switch lang := strings.ToLower(Attr(span, "lang")); {
		case strings.HasPrefix(lang, "nl"):
			nlSpan = span
		case strings.HasPrefix(lang, "fr"):
			frSpan = span
		}
	}

	var h HeadingText
	assign := func(text string, lang Language) {
		if text == "" {
			return
		}
		if lang == French {
			h.FR = text
		} else {
			h.NL = text
		}
	}

	if nlSpan == nil && frSpan == nil {
		text := headingText(n)
		assign(text, rules.Detect(text))
		return h
	}

	if nlSpan != nil {
		text := headingText(nlSpan)
		lang := Dutch
		if containsAny(strings.ToLower(text), rules.French) {
			lang = French
		}
		assign(text, lang)
	}
	if frSpan != nil {
		text := headingText(frSpan)
		lang := French
		if containsAny(strings.ToLower(text), rules.Dutch) {
			lang = Dutch
		}
		assign(text, lang)
	}

	return h
}

func headingText(n *html.Node) string {
	return CollapseSpace(CleanText(Text(n)))
}
