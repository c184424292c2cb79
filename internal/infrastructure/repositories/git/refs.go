package git

import (
	"strings"

	"github.com/rios0rios0/gitshell/internal/domain/entities"
)

// parseReferenceLine parses one line of "for-each-ref" output in the
// "<objectname> <refname>" format. Lines that do not carry a well-formed
// object name are skipped.
func parseReferenceLine(line string) (entities.Reference, bool) {
	hash, name, ok := strings.Cut(strings.TrimSpace(line), " ")
	if !ok || name == "" || !isObjectName(hash) {
		return entities.Reference{}, false
	}
	return entities.Reference{Name: name, Hash: hash}, true
}

// isObjectName reports whether s is a full SHA-1 or SHA-256 object name.
func isObjectName(s string) bool {
	if len(s) != 40 && len(s) != 64 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
