package store

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// cursorKey is the decoded resume point of a page cursor: the sort key of
// the last returned row. Callers treat the encoded form as opaque.
//
// Lemma carries the same Go-folded form stored in the lemma_lower column,
// so cursor comparisons and the SQL ordering agree for non-ASCII lemmas.
type cursorKey struct {
	Lemma string `json:"l"`
	ID    string `json:"i"`
}

// encodeCursor packs a resume point into an opaque URL-safe token.
func encodeCursor(lemma, id string) string {
	data, _ := json.Marshal(cursorKey{Lemma: strings.ToLower(lemma), ID: id})
	return base64.RawURLEncoding.EncodeToString(data)
}

// decodeCursor unpacks a token produced by encodeCursor.
func decodeCursor(cursor string) (cursorKey, error) {
	data, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return cursorKey{}, fmt.Errorf("invalid cursor: %w", err)
	}
	var key cursorKey
	if err := json.Unmarshal(data, &key); err != nil {
		return cursorKey{}, fmt.Errorf("invalid cursor: %w", err)
	}
	return key, nil
}
