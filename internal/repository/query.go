package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s anywhere, with LIKE
// wildcards in s treated literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
