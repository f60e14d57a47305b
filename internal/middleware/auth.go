package middleware

import (
	"net/http"
	"strings"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ContextPrincipalKey = "principal"

// AuthMiddleware accepts an access token from the Authorization header or the token query parameter.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, secret, util.TokenTypeAccess)
		if err != nil {
			logger.Log.Debug("JWT rejected", zap.String("path", c.FullPath()), zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, claims)
		c.Set(ContextPrincipalKey, util.PrincipalFromClaims(claims))
		c.Next()
	}
}

func GetPrincipal(c *gin.Context) *util.Principal {
	v, ok := c.Get(ContextPrincipalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*util.Principal)
	return p
}

func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if user.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// EmployeeAccess guards routes carrying an employee id path parameter:
// admins reach any employee, employees only their linked record.
func EmployeeAccess(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		employeeID, ok := util.ParseIDParam(c, param)
		if !ok {
			util.BadRequest(c, "invalid employee id")
			c.Abort()
			return
		}

		if !principal.CanAccessEmployee(employeeID) {
			util.Error(c, http.StatusForbidden, "You do not have access to this employee")
			c.Abort()
			return
		}
		c.Next()
	}
}
