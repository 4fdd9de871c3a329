package chat

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-estate-assistant/internal/types"
)

// maxNamesPerCategory is how many place names a category lists before
// collapsing the rest into "and N more".
const maxNamesPerCategory = 3

// composeReply renders the aggregated places as a short grouped
// summary. Categories appear in order of first appearance, so the
// output is deterministic for a given input ordering. The text is for
// humans only; nothing parses it back.
func composeReply(address string, places []types.Place) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I found information about %s. Here's what's nearby:\n\n", address)

	var order []string
	grouped := make(map[string][]types.Place)
	for _, p := range places {
		if _, seen := grouped[p.Category]; !seen {
			order = append(order, p.Category)
		}
		grouped[p.Category] = append(grouped[p.Category], p)
	}

	for _, category := range order {
		group := grouped[category]
		b.WriteString(titleCase(category))
		b.WriteString(": ")

		names := make([]string, 0, maxNamesPerCategory)
		for i, p := range group {
			if i == maxNamesPerCategory {
				break
			}
			names = append(names, fmt.Sprintf("%s (%s miles away)", p.Name, p.Distance))
		}
		b.WriteString(strings.Join(names, ", "))
		if len(group) > maxNamesPerCategory {
			fmt.Fprintf(&b, " and %d more", len(group)-maxNamesPerCategory)
		}
		b.WriteString(".\n\n")
	}

	b.WriteString("Click 'Open in Google Maps' for directions and more details.")
	return b.String()
}

// titleCase uppercases only the first character, matching the display
// style of category labels ("Transit station", not "Transit Station").
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
