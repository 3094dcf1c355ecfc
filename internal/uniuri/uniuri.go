// Package uniuri generates random identifiers for uploaded assets.
package uniuri

import (
	"crypto/rand"
	"strings"
)

// StdLen gives roughly 82 bits of entropy with StdChars.
const StdLen = 16

// StdChars is lowercase only; provider public ids are case-insensitive in URLs.
var StdChars = []byte("abcdefghijklmnopqrstuvwxyz0123456789")

// New returns a random string of StdLen characters.
func New() string {
	return NewLenChars(StdLen, StdChars)
}

// NewLenChars returns a random string of length characters taken from chars.
// It panics if chars holds fewer than 2 or more than 256 entries.
func NewLenChars(length int, chars []byte) string {
	if length <= 0 {
		return ""
	}

	clen := len(chars)
	if clen < 2 || clen > 256 {
		panic("uniuri: wrong charset length")
	}

	// bytes above limit are rejected to avoid modulo bias
	limit := 255 - (256 % clen)
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/2)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: reading random bytes: " + err.Error())
		}

		for _, b := range buf {
			if int(b) > limit {
				continue
			}

			out = append(out, chars[int(b)%clen])
			if len(out) == length {
				break
			}
		}
	}

	return string(out)
}

// PublicID joins folder and a fresh random name with "/".
// Leading and trailing slashes of folder are dropped.
func PublicID(folder string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return New()
	}

	return folder + "/" + New()
}
