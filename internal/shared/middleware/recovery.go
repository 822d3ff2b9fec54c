package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookshelf-graphql/internal/domains/catalog/model"
)

// Recovery turns a panic into a 500 with a GraphQL-shaped error body so
// clients only ever have to parse one envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Interface("error", err).
					Msg("Panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"errors": []gin.H{{
						"message":    "internal server error",
						"extensions": gin.H{"code": model.CodeInternal},
					}},
				})
			}
		}()

		c.Next()
	}
}
