package middleware

import (
	"bytes"
	"io"
	"time"

	"blkout_community_go/pkg/log"

	"github.com/gin-gonic/gin"
)

// BodyLogWriter tees the response body into a buffer for the request log.
type BodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *BodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// RequestLogger logs every request with latency, status and both bodies.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
		}
		// Hand the body back so handlers (and the signature check) can read it.
		c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))

		blw := &BodyLogWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = blw

		c.Next()

		log.Infow("HTTP request",
			"latency", time.Since(startTime),
			"status", c.Writer.Status(),
			"client_ip", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_body", string(requestBody),
			"response_body", blw.body.String(),
		)
	}
}
