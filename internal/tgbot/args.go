package tgbot

import (
	"fmt"
	"strings"
)

// parseNamesAndSlot splits command arguments shaped
//
//	<name 1>, ..., <name n> <slot>
//
// Names are comma-separated; the slot label is the last whitespace token
// of the last segment. Multi-word names are fine everywhere.
func parseNamesAndSlot(args string) ([]string, string, error) {
	segments := strings.Split(args, ",")
	last := strings.TrimSpace(segments[len(segments)-1])

	fields := strings.Fields(last)
	if len(fields) == 0 {
		return nil, "", fmt.Errorf("expecting <name 1>, ..., <name n> <slot>")
	}
	label := fields[len(fields)-1]
	lastName := strings.TrimSpace(strings.TrimSuffix(last, label))

	var names []string
	for _, seg := range segments[:len(segments)-1] {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		names = append(names, seg)
	}
	if lastName != "" {
		names = append(names, lastName)
	}
	if len(names) == 0 {
		return nil, "", fmt.Errorf("expecting at least one name before the slot label")
	}
	return names, label, nil
}
