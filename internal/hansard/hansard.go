// Package hansard carries the one piece of dataset-specific logic for the
// Hansard parliamentary-debate corpus: deciding whether a speaker's post
// title places them in government.
package hansard

import (
	"regexp"
	"strings"
)

// PostNameColumn is the source column the classification reads from.
const PostNameColumn = "post_name"

var oppositionRe = regexp.MustCompile(`(?i)shadow|opposition`)

// IsInGov reports whether a post title belongs to a government member.
// Opposition-side titles contain "shadow" or "opposition"; an empty or
// missing title ("nan" in exports from dataframe tooling) is not in
// government.
func IsInGov(postName string) bool {
	postName = strings.TrimSpace(postName)
	if postName == "" || strings.EqualFold(postName, "nan") {
		return false
	}
	return !oppositionRe.MatchString(postName)
}
