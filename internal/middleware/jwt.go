package middleware

import (
	"errors"
	"net/http"
	"time"

	"stockroom/internal/common"
	"stockroom/internal/config"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// tokenContextKey is where echo-jwt stores the parsed token
const tokenContextKey = "user"

// Authenticator verifies bearer tokens issued by the identity provider and
// places the subject on the request context as the acting user id.
type Authenticator struct {
	config echojwt.Config
	jwks   *keyfunc.JWKS
}

// NewAuthenticator verifies tokens against the JWKS endpoint when one is
// configured and falls back to the shared HMAC secret otherwise.
func NewAuthenticator(cfg config.AuthConfig, logger *zap.Logger) (*Authenticator, error) {
	a := &Authenticator{}
	a.config = echojwt.Config{
		ContextKey:     tokenContextKey,
		SuccessHandler: storeSubject,
		ErrorHandler: func(c echo.Context, err error) error {
			logger.Debug("token rejected", zap.String("path", c.Path()), zap.Error(err))
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}

	switch {
	case cfg.JWKSURL != "":
		jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
			RefreshInterval:   time.Hour,
			RefreshUnknownKID: true,
			RefreshErrorHandler: func(err error) {
				logger.Warn("jwks refresh failed", zap.String("url", cfg.JWKSURL), zap.Error(err))
			},
		})
		if err != nil {
			return nil, err
		}
		a.jwks = jwks
		a.config.KeyFunc = jwks.Keyfunc
	case cfg.JWTSecret != "":
		a.config.SigningKey = []byte(cfg.JWTSecret)
	default:
		return nil, errors.New("either a JWT secret or a JWKS URL is required")
	}
	return a, nil
}

func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(a.config)
}

// Close stops the background JWKS refresh, if any.
func (a *Authenticator) Close() {
	if a.jwks != nil {
		a.jwks.EndBackground()
	}
}

func storeSubject(c echo.Context) {
	token, ok := c.Get(tokenContextKey).(*jwt.Token)
	if !ok {
		return
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return
	}
	c.SetRequest(c.Request().WithContext(common.WithUserID(c.Request().Context(), sub)))
}
