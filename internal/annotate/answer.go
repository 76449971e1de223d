package annotate

import (
	"strconv"
	"strings"

	"geotag/internal/prompt"
)

// AskAmenity reads one amenity answer: a 1-based index into the
// vocabulary, free text used verbatim, or the quit token. Blank input
// and out-of-range indices are rejected locally with a re-prompt and
// never surface to the caller. A digit-only answer is always treated
// as a menu selection, matching the console protocol even when the
// vocabulary is empty.
func AskAmenity(c *prompt.Console, label string, vocabulary []string) (answer string, quit bool, err error) {
	for {
		input, err := c.Ask(label)
		if err != nil {
			return "", false, err
		}

		if strings.EqualFold(input, "q") {
			return "", true, nil
		}
		if input == "" {
			c.Errorf("Amenity cannot be empty. Please enter a value.")
			continue
		}
		if isDigits(input) {
			idx, convErr := strconv.Atoi(input)
			if convErr != nil || idx < 1 || idx > len(vocabulary) {
				c.Errorf("Invalid number. Try again.")
				continue
			}
			return vocabulary[idx-1], false, nil
		}
		return input, false, nil
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
