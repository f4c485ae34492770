package middleware

import (
	"github.com/gin-gonic/gin"
)

// BindJSON binds the request body into obj and validates it.
// On failure it writes a 400 response and returns false.
func BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		HandleBindingError(c, err)
		return false
	}
	return true
}

// BindQuery binds the query string into obj and validates it.
// On failure it writes a 400 response and returns false.
func BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		HandleBindingError(c, err)
		return false
	}
	return true
}
