// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"context"
	"strconv"
	"strings"

	"questa/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// AccessTokenCookie is the cookie carrying the JWT for browser clients.
const AccessTokenCookie = "access_token"

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// Identity is the authenticated caller resolved from a verified token.
type Identity struct {
	UserID  uint
	IsAdmin bool
}

// IdentityFromCtx returns the identity stored by AuthRequired. ok is false on
// routes that did not run the middleware.
func IdentityFromCtx(c *fiber.Ctx) (Identity, bool) {
	userID, okID := c.Locals("userID").(uint)
	if !okID {
		return Identity{}, false
	}
	isAdmin, _ := c.Locals("isAdmin").(bool)
	return Identity{UserID: userID, IsAdmin: isAdmin}, true
}

// AuthRequired enforces authentication for protected routes. The token is
// read from the Authorization header or, for browser clients, the
// access_token cookie. On success the caller's id and admin flag are stored
// in the request locals and the user id is propagated into the user context
// for logging.
func AuthRequired(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		tokenString = c.Cookies(AccessTokenCookie)
	}
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token claims",
		})
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token structure - missing subject",
		})
	}
	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user ID in token",
		})
	}

	isAdmin, _ := claims["isAdmin"].(bool)

	c.Locals("userID", uint(userIDVal))
	c.Locals("isAdmin", isAdmin)

	ctx := context.WithValue(c.UserContext(), UserIDKey, uint(userIDVal))
	c.SetUserContext(ctx)

	return c.Next()
}

// AdminRequired enforces the caller's admin flag. It must run after
// AuthRequired.
func AdminRequired(c *fiber.Ctx) error {
	isAdmin, _ := c.Locals("isAdmin").(bool)
	if !isAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Admin access required",
		})
	}
	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
