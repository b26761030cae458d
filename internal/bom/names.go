package bom

import (
	"regexp"
	"strings"
)

var (
	versionSuffix = regexp.MustCompile(`\s*v\d+$`)
	copySuffix    = regexp.MustCompile(`\s*\(\d+\)$`)
)

// CleanPartName strips occurrence and version decorations from a host name:
// "Leg:1" and "Leg (2)" both become "Leg", "Shelf v3" becomes "Shelf".
func CleanPartName(name string) string {
	name, _, _ = strings.Cut(name, ":")
	name = versionSuffix.ReplaceAllString(name, "")
	name = copySuffix.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}
