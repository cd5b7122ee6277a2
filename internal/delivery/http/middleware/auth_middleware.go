package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	deliverycontext "commons/internal/delivery/context"
	"commons/internal/domain/entity"
	"commons/internal/domain/repository"
	"commons/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// ContextKeyCurrentAccount is the echo.Context key holding the authenticated account.
const ContextKeyCurrentAccount = "currentAccount"

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc    service.TokenService
	accountRepo repository.AccountRepository
	logger      *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, accountRepo repository.AccountRepository, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, accountRepo: accountRepo, logger: logger}
}

// Authenticate validates the JWT access token and loads the account it names.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		account, err := m.resolveAccount(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
		}

		c.Set(ContextKeyCurrentAccount, account)

		return next(c)
	}
}

// OptionalAuthenticate loads the account when a valid bearer token is present
// and continues anonymously otherwise. The sign-in callback accepts both
// signed-in requesters (linking another provider) and anonymous ones.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") == "" {
			return next(c)
		}

		account, err := m.resolveAccount(c)
		if err != nil {
			m.log(c).Debug("Ignoring invalid bearer token on optional route",
				slog.String("error", err.Error()),
			)

			return next(c)
		}

		c.Set(ContextKeyCurrentAccount, account)

		return next(c)
	}
}

func (m *AuthMiddleware) resolveAccount(c echo.Context) (*entity.Account, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, errMissingAuthHeader
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, errInvalidTokenFormat
	}

	claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, errInvalidToken
	}

	account, err := m.accountRepo.FindByID(c.Request().Context(), claims.AccountID)
	if err != nil {
		return nil, errInvalidToken
	}

	return account, nil
}

func (m *AuthMiddleware) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
}

// CurrentAccount extracts the authenticated account from echo.Context, if any.
func CurrentAccount(c echo.Context) *entity.Account {
	account, _ := c.Get(ContextKeyCurrentAccount).(*entity.Account)

	return account
}
