package recent

import "strings"

// vocabulary holds the canned completion terms, in presentation order.
var vocabulary = []string{
	"Python Programming",
	"JavaScript Fundamentals",
	"React Development",
	"Machine Learning",
	"Data Structures",
	"Web Development",
	"Computer Science",
	"Software Engineering",
	"Algorithm Design",
	"Database Systems",
}

// MaxSuggestions caps the number of completions returned.
const MaxSuggestions = 5

// Suggest returns up to MaxSuggestions vocabulary terms containing prefix,
// compared case-insensitively, in vocabulary order. A blank prefix yields
// nothing.
func Suggest(prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil
	}

	var matches []string
	for _, term := range vocabulary {
		if strings.Contains(strings.ToLower(term), prefix) {
			matches = append(matches, term)
			if len(matches) == MaxSuggestions {
				break
			}
		}
	}
	return matches
}
