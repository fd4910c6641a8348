package auth

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rogerio-castellano/inventory-console/internal/models"
)

var (
	ErrMissingToken = errors.New("missing or invalid token")
	ErrInvalidToken = errors.New("invalid token")
)

var (
	settingsMu sync.RWMutex
	jwtSecret  = []byte("super-secret-key")
	tokenTTL   = time.Hour
)

// Configure sets the signing secret and lifetime used for every token issued afterwards.
func Configure(secret string, ttl time.Duration) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	jwtSecret = []byte(secret)
	tokenTTL = ttl
}

func TokenTTL() time.Duration {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return tokenTTL
}

func secret() []byte {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return jwtSecret
}

func GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":         user.ID,
		"username":    user.Username,
		"role":        user.Role,
		"permissions": user.Permissions,
		"exp":         time.Now().Add(TokenTTL()).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

func ParseToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
}

// TokenClaims validates a "Bearer <jwt>" Authorization header value.
func TokenClaims(authorization string) (*jwt.Token, jwt.MapClaims, error) {
	if !strings.HasPrefix(authorization, "Bearer ") {
		return nil, nil, ErrMissingToken
	}

	token, err := ParseToken(strings.TrimPrefix(authorization, "Bearer "))
	if err != nil || !token.Valid {
		return nil, nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil, ErrInvalidToken
	}
	return token, claims, nil
}

// PrincipalFromClaims reads the identity stored by GenerateToken.
func PrincipalFromClaims(claims jwt.MapClaims) (Principal, error) {
	sub, ok := claims["sub"].(float64)
	if !ok {
		return Principal{}, ErrInvalidToken
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	p := Principal{UserID: int(sub), Username: username, Role: role}
	if raw, ok := claims["permissions"].([]any); ok {
		for _, perm := range raw {
			if s, ok := perm.(string); ok {
				p.Permissions = append(p.Permissions, s)
			}
		}
	}
	if len(p.Permissions) == 0 {
		p.Permissions = models.RolePermissions[role]
	}
	return p, nil
}
