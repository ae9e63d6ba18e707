package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"os"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/api/response"
)

// timeTokenTTL bounds how long a generated time token stays valid.
// It only needs to cover the parser microservice's request round trip.
const timeTokenTTL = 60 * time.Second

// APIKeyMiddleware protects internal endpoints called by the parser
// microservice. Callers must present the shared API key in X-API-Key and a
// fresh fernet time token in X-Time-Token; the token is derived from the same
// key, so a leaked request cannot be replayed after the TTL.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expectedKey := os.Getenv("INTERNAL_API_KEY")
		if expectedKey == "" {
			response.RespondError(w, http.StatusInternalServerError, "internal API not configured", "API key not configured")
			return
		}

		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}

		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(expectedKey)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		timeToken := r.Header.Get("X-Time-Token")
		if timeToken == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing Time token")
			return
		}

		key := fernetKey(expectedKey)
		if fernet.VerifyAndDecrypt([]byte(timeToken), timeTokenTTL, []*fernet.Key{key}) == nil {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GenerateTimeToken creates a fernet token bound to the API key and the
// current time. Exposed for clients and tests.
func GenerateTimeToken(apiKey string) string {
	token, err := fernet.EncryptAndSign([]byte(time.Now().UTC().Format(time.RFC3339)), fernetKey(apiKey))
	if err != nil {
		return ""
	}
	return string(token)
}

// fernetKey derives the fernet signing key from the shared API key.
func fernetKey(apiKey string) *fernet.Key {
	sum := sha256.Sum256([]byte(apiKey))
	var key fernet.Key
	copy(key[:], sum[:])
	return &key
}
