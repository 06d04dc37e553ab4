// Package respond is the single place where domain errors become HTTP
// responses. Every error body carries at least a message field; nothing
// internal leaks to the client.
package respond

import (
	"log"

	"github.com/gin-gonic/gin"

	"yt-summarizer/internal/app"
)

// Error maps a domain error to its own status and message; anything
// unrecognized degrades to a 500 with the caller-supplied fallback.
func Error(c *gin.Context, err error, fallback string) {
	if domainErr, ok := app.AsDomainError(err); ok {
		c.JSON(domainErr.Status(), gin.H{"message": domainErr.Message})
		return
	}
	log.Printf("unhandled error on %s: %v", c.FullPath(), err)
	c.JSON(500, gin.H{"message": fallback})
}
