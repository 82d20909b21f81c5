package repo

import "strings"

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
