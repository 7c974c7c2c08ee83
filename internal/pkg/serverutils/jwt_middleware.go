package serverutils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const userIdKey = "user_id"

// SessionMiddleware resolves the current user. A Bearer token must be valid and carry a
// user_id claim; a request without one runs as fallbackUserId, the configured demo user.
// With an empty secret no token can be verified, so every Bearer token is rejected.
func SessionMiddleware(secret, fallbackUserId string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			ctx.Locals(userIdKey, fallbackUserId)
			return ctx.Next()
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return unauthorized(ctx, "Missing token")
		}

		if secret == "" {
			return unauthorized(ctx, "Token authentication is not configured")
		}

		token, err := jwt.Parse(strings.TrimPrefix(authHeader, "Bearer "), func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			return unauthorized(ctx, "Invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(ctx, "Invalid claims")
		}
		userId, ok := claims[userIdKey].(string)
		if !ok || userId == "" {
			return unauthorized(ctx, "Invalid claims")
		}

		ctx.Locals(userIdKey, userId)
		return ctx.Next()
	}
}

// UserIdFromCtx returns the user resolved by SessionMiddleware.
func UserIdFromCtx(ctx *fiber.Ctx) string {
	userId, _ := ctx.Locals(userIdKey).(string)
	return userId
}

func unauthorized(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, message))
}
