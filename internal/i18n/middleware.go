package i18n

import (
	"github.com/gin-gonic/gin"
)

const contextKey = "localizer"

// Middleware attaches a Localizer to every request, chosen from ?lang= or
// Accept-Language and falling back to fallback.
func Middleware(fallback string) gin.HandlerFunc {
	return func(c *gin.Context) {
		l := FromAcceptLanguage(c.Query("lang"), c.GetHeader("Accept-Language"), fallback)
		c.Set(contextKey, l)
		c.Header("Content-Language", l.Lang())
		c.Next()
	}
}

// FromContext returns the request's Localizer, English when none was attached.
func FromContext(c *gin.Context) *Localizer {
	if v, ok := c.Get(contextKey); ok {
		if l, ok := v.(*Localizer); ok {
			return l
		}
	}
	return New("en")
}
