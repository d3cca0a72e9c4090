package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CompanyHeader carries the tenant id, set by the auth edge in front of this
// service.
const CompanyHeader = "X-Company-ID"

const companyContextKey = "company_id"

// CompanyScope rejects requests without a valid tenant id and stashes the
// parsed id in the request context.
func CompanyScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(CompanyHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + CompanyHeader + " header"})
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + CompanyHeader + " header"})
			return
		}

		c.Set(companyContextKey, id)
		c.Next()
	}
}

// CompanyID returns the tenant id stored by CompanyScope.
func CompanyID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(companyContextKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
