package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ShortRef builds a short uppercase reference like "RET-3FA85F64" or
// "TX-1B4E28A4". Collisions are statistically negligible at
// operational scale; the unique index on the column is the backstop.
func ShortRef(prefix string) string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return prefix + "-" + token
}
