package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"unicode"

	"phone_hunter/internal/domain/entity"
	"phone_hunter/internal/domain/value"
)

// KeyVersion tags the canonical fingerprint key shape. The key is
// {title, price, description prefix, location}: a single versioned constant,
// never re-derived per source. Bump the version if the field set or the
// normalization ever changes, so old ledger rows stay inert instead of
// colliding with the new shape.
const KeyVersion = "v1"

// descriptionPrefixRunes bounds how much of the description participates in
// the identity. Sources truncate and reorder long descriptions between
// fetches; the opening sentences are the stable part.
const descriptionPrefixRunes = 150

// Fingerprint computes the content-addressed identity of a listing: a 128-bit
// SHA-256 prefix over the normalized field projection, hex-encoded.
// Deterministic and stable across process restarts: no seed, no
// locale-dependent casing.
func Fingerprint(listing entity.Listing) value.Fingerprint {
	key := strings.Join([]string{
		KeyVersion,
		normalize(listing.Title),
		strconv.FormatInt(listing.Price, 10),
		prefix(normalize(listing.Description), descriptionPrefixRunes),
		normalize(listing.Location),
	}, "|")

	sum := sha256.Sum256([]byte(key))

	return value.Fingerprint(hex.EncodeToString(sum[:16]))
}

// normalize lowercases the text and drops everything that is not a letter or
// a digit. Re-scraped, re-posted and reformatted copies of the same ad
// collapse to the same string.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// prefix truncates to at most n runes. Applied after normalization so that
// whitespace inside the prefix window cannot shift which characters survive.
func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
