package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

// Claims identify a party: the subject is its id, role is "sender" or "carrier".
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator turns bearer tokens into actors. Requests without a token act
// anonymously; a token that is present but invalid is rejected with 401.
type Authenticator struct {
	secret []byte
	parser *jwt.Parser
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				c.Set(actorKey, kernel.AnonymousActor())
				return next(c)
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "expected a bearer token")
			}
			actor, err := a.Actor(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// Actor validates token and builds the actor it names.
func (a *Authenticator) Actor(token string) (kernel.Actor, error) {
	var claims Claims
	_, err := a.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("invalid token: %w", err)
	}

	partyID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("invalid subject: %w", err)
	}
	role, err := kernel.ParseRole(claims.Role)
	if err != nil {
		return kernel.Actor{}, err
	}
	return kernel.NewActor(partyID, role)
}

// Issue signs a token for partyID. It backs local tooling and tests; production
// tokens come from the identity provider sharing the secret.
func (a *Authenticator) Issue(partyID kernel.UUID, role kernel.Role, ttl time.Duration) (string, error) {
	if role != kernel.Sender && role != kernel.Carrier {
		return "", errors.New("only senders and carriers carry tokens")
	}
	now := time.Now()
	claims := Claims{
		Role: strings.ToLower(role.String()),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   partyID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func actorFrom(c echo.Context) kernel.Actor {
	if actor, ok := c.Get(actorKey).(kernel.Actor); ok {
		return actor
	}
	return kernel.AnonymousActor()
}
