package anubis

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// errAnubisTransient marks failures where the identity provider was
// unreachable or misbehaving. Only these count against the circuit
// breaker; rejected tokens do not.
var errAnubisTransient = crerr.New("anubis transient failure")

func markTransient(err error) error {
	if err == nil {
		return nil
	}
	return crerr.Mark(err, errAnubisTransient)
}

func isTransientFailure(err error) bool {
	return crerr.Is(err, errAnubisTransient)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
