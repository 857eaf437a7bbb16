package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"blkout_community_go/pkg/log"

	"github.com/gin-gonic/gin"
)

const signatureHeader = "X-N8N-Signature"

// VerifySignature authenticates inbound automation webhooks: the header must
// carry "sha256=<hex>" where <hex> is the HMAC-SHA256 of the raw request
// body under the shared secret. Comparison is constant-time. On mismatch the
// request is rejected with 401 before any handler runs, so nothing is
// written to the store.
func VerifySignature(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			log.Warnf("webhook signature secret not configured, rejecting request")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":    http.StatusInternalServerError,
				"message": "Internal server error",
			})
			return
		}

		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
		}
		// Hand the body back for the handler's JSON binding.
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		header := c.GetHeader(signatureHeader)
		if !validSignature(secret, header, body) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "Invalid webhook signature",
			})
			return
		}

		c.Next()
	}
}

func validSignature(secret, header string, body []byte) bool {
	const prefix = "sha256="
	if !strings.HasPrefix(header, prefix) {
		return false
	}
	got, err := hex.DecodeString(strings.TrimPrefix(header, prefix))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	want := mac.Sum(nil)

	return hmac.Equal(got, want)
}
