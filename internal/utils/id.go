package utils

import "crypto/rand"

// idAlphabet matches the nanoid default, which is the id format already
// present in existing db.json files.
const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

const idLength = 10

// NewID returns a short random record identifier. 64^10 values make a
// collision negligible for the record counts a single-file blog holds.
func NewID() string {
	buf := make([]byte, idLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand reading from the OS never fails in practice
		panic(err)
	}
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)&63]
	}
	return string(buf)
}
