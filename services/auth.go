package services

import (
	"errors"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Caisio-Cloud/popmath-game/shared"
)

type AuthMiddleware struct {
	context.DefaultService

	sqlSvc *SqliteService
	jwtSvc *JWTService
}

const AUTH_MIDDLEWARE_SVC = "auth"

func (svc AuthMiddleware) Id() string {
	return AUTH_MIDDLEWARE_SVC
}

func (svc *AuthMiddleware) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthMiddleware) Start() error {
	svc.sqlSvc = svc.Service(SQLITE_SVC).(*SqliteService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	return nil
}

// RequiredAuth resolves the acting player from the bearer token and stores
// the user id in locals. A token whose account row no longer exists is
// treated as logged out, not as a server error.
func (svc *AuthMiddleware) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		token, err := svc.jwtSvc.ExtractTokenFromHeader(authHeader)
		if err != nil {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "No user logged in")
		}

		userID, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil || userID == "" {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid JWT token")
		}

		if _, err := svc.sqlSvc.GetUser(userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "No user logged in")
			}
			return shared.ResponseInternalError(c, err)
		}

		c.Locals(shared.UserID, userID)
		return c.Next()
	}
}
