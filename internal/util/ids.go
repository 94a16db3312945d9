package util

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "-=_+!@#$^&()?<>"
)

// DefaultIDLength is the length GenerateID uses when given n <= 0.
const DefaultIDLength = 8

// randomString draws n characters uniformly from chars using crypto/rand.
func randomString(chars string, n int) (string, error) {
	if len(chars) == 0 {
		return "", errors.New("empty character set")
	}
	limit := big.NewInt(int64(len(chars)))
	out := make([]byte, n)
	for i := range n {
		j, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("crypto/rand: %w", err)
		}
		out[i] = chars[j.Int64()]
	}
	return string(out), nil
}

// GenerateID returns a random alphanumeric identifier of length n.
func GenerateID(n int) (string, error) {
	if n <= 0 {
		n = DefaultIDLength
	}
	return randomString(upperChars+lowerChars+digitChars, n)
}

// PassgenOptions selects the character classes of a generated password.
type PassgenOptions struct {
	Length  int
	Upper   bool
	Lower   bool
	Numbers bool
	Symbols bool
}

// GenPassword returns a random password. With no class enabled or a
// non-positive length it returns "".
func GenPassword(opts PassgenOptions) (string, error) {
	chars := ""
	if opts.Upper {
		chars += upperChars
	}
	if opts.Lower {
		chars += lowerChars
	}
	if opts.Numbers {
		chars += digitChars
	}
	if opts.Symbols {
		chars += symbolChars
	}
	if chars == "" || opts.Length <= 0 {
		return "", nil
	}
	return randomString(chars, opts.Length)
}
