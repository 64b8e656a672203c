package validator

import (
	"strings"
)

var secretPatterns = []string{
	"secret", "token", "password", "passwd", "pwd",
	"auth", "credential", "cred",
	"private", "priv_key", "cert",
	"api_key", "apikey", "access_key", "secret_key",
	"client_secret", "oauth",
	"bearer", "jwt", "session", "cookie",
	"salt", "signature", "signing",
	"encryption", "cipher",
	"webhook", "vault",
}

var databasePatterns = []string{
	"database_url", "db_url", "dsn", "connection_string",
	"postgres_url", "mysql_url", "mongodb_url", "redis_url",
}

// Keys containing these are not secrets even if a secret pattern matches
var publicPatterns = []string{
	"public", "publishable",
}

// IsSensitiveKey reports whether a variable name looks like it holds a secret
// or a credential-bearing connection string.
func IsSensitiveKey(name string) bool {
	nameLower := strings.ToLower(name)

	for _, pattern := range publicPatterns {
		if strings.Contains(nameLower, pattern) {
			return false
		}
	}

	// Database connection strings
	for _, pattern := range databasePatterns {
		if strings.Contains(nameLower, pattern) {
			return true
		}
	}

	// General secrets
	for _, pattern := range secretPatterns {
		if strings.Contains(nameLower, pattern) {
			return true
		}
	}

	return strings.HasSuffix(nameLower, "_key") || nameLower == "key"
}

// Mask hides all but a short prefix of a sensitive value
func Mask(value string) string {
	runes := []rune(value)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:2]) + strings.Repeat("*", len(runes)-2)
}
