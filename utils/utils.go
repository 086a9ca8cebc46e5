package utils

import (
	"crypto/md5"
	"encoding/hex"
	"math/rand"
	"os"

	"github.com/Luismorlan/newsdash/utils/dotenv"
)

const letters = "abcdefghijklmnopqrstuvwxyz"

// TextToMd5Hash returns the hex encoded md5 of text, used as a compact cache
// key for arbitrary length input.
func TextToMd5Hash(text string) (string, error) {
	hasher := md5.New()
	if _, err := hasher.Write([]byte(text)); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func RandomAlphabetString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

func IsProdEnv() bool {
	return os.Getenv(dotenv.EnvKey) == dotenv.ProdEnv
}
