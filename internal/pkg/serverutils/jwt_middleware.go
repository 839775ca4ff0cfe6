package serverutils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// Tokens are issued by the external auth provider; this service only verifies them.
func parseBearer(ctx *fiber.Ctx, secret string) (jwt.MapClaims, bool) {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return nil, false
	}
	return ParseToken(authHeader[7:], secret)
}

// ParseToken verifies an HMAC signed token. An empty secret rejects everything.
func ParseToken(tokenStr, secret string) (jwt.MapClaims, bool) {
	if tokenStr == "" || secret == "" {
		return nil, false
	}
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

func storeClaims(ctx *fiber.Ctx, claims jwt.MapClaims) {
	userId, _ := claims["user_id"].(string)
	if userId == "" {
		userId, _ = claims["sub"].(string)
	}
	if userId != "" {
		ctx.Locals(LocalUserID, userId)
	}
	if role, ok := claims["role"].(string); ok {
		ctx.Locals(LocalRole, role)
	}
}

func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		claims, ok := parseBearer(ctx, secret)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing or invalid token"))
		}
		storeClaims(ctx, claims)
		return ctx.Next()
	}
}

// OptionalJwtMiddleware stores the caller identity when a valid token is
// present and lets anonymous requests through untouched.
func OptionalJwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if claims, ok := parseBearer(ctx, secret); ok {
			storeClaims(ctx, claims)
		}
		return ctx.Next()
	}
}

// RequireRole must run after JwtMiddleware.
func RequireRole(role string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		current, _ := ctx.Locals(LocalRole).(string)
		if current == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(fiber.StatusForbidden, "Access denied: Role missing"))
		}
		if current != role {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(fiber.StatusForbidden, "Access denied: Admins only"))
		}
		return ctx.Next()
	}
}

func UserIDFromCtx(ctx *fiber.Ctx) string {
	userId, _ := ctx.Locals(LocalUserID).(string)
	return userId
}
