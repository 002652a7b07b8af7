package classify

import "strings"

// Rule maps a lowercase keyword to its canonical label.
type Rule struct {
	Keyword string
	Label   string
}

// RuleSet is an ordered list of rules. Lookup is first-match over the defined
// order, NOT longest-match: overlapping keywords (a surname contained in a
// longer phrase) resolve by position in the set, and reordering the set
// changes results.
type RuleSet []Rule

// Match returns the label of the first rule whose keyword is a substring of
// the case-folded text, or fallback when no rule matches.
func (rs RuleSet) Match(text, fallback string) string {
	text = strings.ToLower(text)
	for _, rule := range rs {
		if strings.Contains(text, rule.Keyword) {
			return rule.Label
		}
	}
	return fallback
}

// Classifier assigns category and author labels from filename plus caption
// text. Rule sets are injected at construction and never mutated afterwards,
// so identical input always yields the identical label.
type Classifier struct {
	categories RuleSet
	authors    RuleSet
}

// New builds a classifier from the given rule sets. Nil sets fall back to the
// built-in defaults.
func New(categories, authors RuleSet) *Classifier {
	if categories == nil {
		categories = DefaultCategoryRules()
	}
	if authors == nil {
		authors = DefaultAuthorRules()
	}
	return &Classifier{categories: categories, authors: authors}
}

// Category returns the category label for the text, or "Other".
func (c *Classifier) Category(text string) string {
	return c.categories.Match(text, "Other")
}

// Author returns the author label for the text, or "Unknown".
func (c *Classifier) Author(text string) string {
	return c.authors.Match(text, "Unknown")
}
