package user

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

const gravatarBase = "//www.gravatar.com/avatar/"

// GravatarURL returns a 200px, pg-rated avatar with the "mystery man" fallback.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(NormalizeEmail(email)))
	return gravatarBase + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}

// NormalizeEmail trims and lower-cases an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
