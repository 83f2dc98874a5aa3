package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Claims arrive as whatever type the JWT library decoded; normalize
// to uint.
func contextUint(c *gin.Context, key string) (uint, error) {
	raw, ok := c.Get(key)
	if !ok {
		return 0, errors.New(key + " missing from context")
	}
	switch v := raw.(type) {
	case uint:
		return v, nil
	case int:
		return uint(v), nil
	case int64:
		return uint(v), nil
	case float64:
		return uint(v), nil
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, errors.New(key + " is not a number")
		}
		return uint(n), nil
	default:
		return 0, errors.New(key + " has an unexpected type")
	}
}

func currentUserID(c *gin.Context) (uint, error) {
	return contextUint(c, "user_id")
}

func currentCompanyID(c *gin.Context) (uint, error) {
	return contextUint(c, "company_id")
}

// identity returns both ids or writes a 401 and reports false.
func identity(c *gin.Context) (userID, companyID uint, ok bool) {
	userID, err := currentUserID(c)
	if err == nil {
		companyID, err = currentCompanyID(c)
	}
	if err != nil {
		c.AbortWithStatusJSON(401, gin.H{"message": "unauthorized", "error": err.Error()})
		return 0, 0, false
	}
	return userID, companyID, true
}
