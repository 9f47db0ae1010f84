// Package sanitize strips markup from user-supplied text before it is
// stored. Profile names, team names, titles, and resource titles are plain
// text fields; anything that looks like HTML in them is an accident or an
// injection attempt, so the strict policy applies.
package sanitize

import "github.com/microcosm-cc/bluemonday"

var strict = bluemonday.StrictPolicy()

// Text removes all HTML tags and attributes, leaving plain text.
func Text(s string) string {
	return strict.Sanitize(s)
}
