package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/tablewise/tablewise-api/internal/presentation/http/dto/response"
)

// WebhookSignatureHeader carries the gateway's HMAC of the request body
const WebhookSignatureHeader = "X-Webhook-Signature"

// VerifyWebhookSignature checks the HMAC-SHA256 signature of the raw request
// body against the shared gateway secret. An empty secret disables
// verification, which is only acceptable in development.
func VerifyWebhookSignature(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		signature := c.GetHeader(WebhookSignatureHeader)
		if signature == "" {
			response.Unauthorized(c, "Missing webhook signature")
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Unable to read request body")
			c.Abort()
			return
		}
		// Restore the body for the handler's bind
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(body)
		expected := hex.EncodeToString(mac.Sum(nil))

		if !hmac.Equal([]byte(expected), []byte(signature)) {
			response.Unauthorized(c, "Invalid webhook signature")
			c.Abort()
			return
		}

		c.Next()
	}
}
