package chain

import "strings"

// Explain summarizes compiled query text in plain words.
func Explain(text string) string {
	var parts []string
	if strings.Contains(text, "MATCH") {
		if strings.Contains(text, ":AS)") || strings.Contains(text, ":AS {") {
			parts = append(parts, "Finds Autonomous System nodes")
		}
		if strings.Contains(text, ":Organization") {
			parts = append(parts, "Includes organization information")
		}
		if strings.Contains(text, ":Country") {
			parts = append(parts, "Includes country information")
		}
	}
	switch {
	case strings.Contains(text, "DEPENDS_ON"):
		parts = append(parts, "Follows dependency relationships")
	case strings.Contains(text, "PEERS_WITH"):
		parts = append(parts, "Follows peering relationships")
	case strings.Contains(text, "MANAGED_BY"):
		parts = append(parts, "Follows organization management relationships")
	}
	if strings.Contains(text, "\nWITH ") {
		parts = append(parts, "Groups and aggregates results")
	}
	if strings.Contains(text, "\nWHERE ") {
		parts = append(parts, "Applies filtering conditions")
	}
	if strings.Contains(text, "\nLIMIT ") {
		parts = append(parts, "Limits the number of results")
	}
	if len(parts) == 0 {
		return "Basic graph query"
	}
	return strings.Join(parts, "; ")
}
