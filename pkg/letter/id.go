package letter

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/benjaminschreck/go-mailmacro/pkg/macro"
)

// idLength is the number of hex characters kept from the digest.
const idLength = 16

// GenerateID derives a stable ID from the letter's fields. The ID itself and
// SavedAt do not take part, so saving the same letter twice yields the same ID.
func GenerateID(l Letter) (string, error) {
	record := l.Record()
	delete(record, macro.FieldID)

	// Maps marshal with sorted keys, which keeps the digest stable.
	payload, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("marshal letter: %w", err)
	}
	sum := sha1.Sum(payload)
	return hex.EncodeToString(sum[:])[:idLength], nil
}
