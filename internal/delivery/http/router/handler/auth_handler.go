// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "commons/internal/delivery/context"
	"commons/internal/delivery/http/middleware"
	"commons/internal/delivery/http/response"
	"commons/internal/domain/entity"
	"commons/internal/infra/auth/omniauth"
	"commons/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for sign-in related handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	reader *omniauth.Reader
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, reader *omniauth.Reader, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		reader: reader,
		logger: logger,
	}
}

// callbackRequest is the sign-in callback body: the provider's OmniAuth-style
// payload plus the signup call-to-action variant captured by the frontend.
type callbackRequest struct {
	Payload    map[string]any `json:"payload"`
	CTAVariant string         `json:"cta_variant"`
}

// callbackResponse is the resolved session returned to the client.
type callbackResponse struct {
	AccountID    string `json:"account_id"`
	Username     string `json:"username"`
	NewAccount   bool   `json:"new_account"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Callback handles the OAuth sign-in callback for a provider.
func (h *AuthHandler) Callback(c echo.Context) error {
	var req callbackRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign-in callback input")
	}

	// The provider in the URL must match the payload; a bare payload
	// inherits it.
	if req.Payload == nil {
		req.Payload = map[string]any{}
	}
	if _, ok := req.Payload["provider"]; !ok {
		req.Payload["provider"] = c.Param("provider")
	}
	if req.Payload["provider"] != c.Param("provider") {
		return response.BadRequest(c, "INVALID_INPUT", "Payload provider does not match callback route")
	}

	// The OAuth state round-trips the signup CTA variant for providers that
	// cannot carry it in the body.
	if req.CTAVariant == "" {
		req.CTAVariant = c.QueryParam("state")
	}

	assertion, err := h.reader.Read(req.Payload)
	if err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Resolve(c.Request().Context(), &usecase.ResolveInput{
		Assertion:      assertion,
		CurrentAccount: middleware.CurrentAccount(c),
		CTAVariant:     req.CTAVariant,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.log(c).Info("Sign-in callback resolved",
		slog.String("provider", assertion.Provider.String()),
		slog.Bool("new_account", output.NewAccount),
	)

	status := http.StatusOK
	if output.NewAccount {
		status = http.StatusCreated
	}

	return response.Success(c, status, &callbackResponse{
		AccountID:    output.Account.ID.String(),
		Username:     output.Account.Username,
		NewAccount:   output.NewAccount,
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	}, "Sign-in successful")
}

// Me returns the authenticated account's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Authentication required")
	}

	return response.Success(c, http.StatusOK, toAccountView(account), "Profile retrieved successfully")
}

// accountView is the public projection of an account.
type accountView struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	ProfileImageURL  string `json:"profile_image_url"`
	GithubUsername   string `json:"github_username,omitempty"`
	TwitterUsername  string `json:"twitter_username,omitempty"`
	Confirmed        bool   `json:"confirmed"`
	SawOnboarding    bool   `json:"saw_onboarding"`
	SignupCTAVariant string `json:"signup_cta_variant,omitempty"`
}

func toAccountView(account *entity.Account) *accountView {
	return &accountView{
		ID:               account.ID.String(),
		Name:             account.Name,
		Username:         account.Username,
		Email:            account.Email,
		ProfileImageURL:  account.ProfileImageURL,
		GithubUsername:   account.GithubUsername,
		TwitterUsername:  account.TwitterUsername,
		Confirmed:        account.Confirmed,
		SawOnboarding:    account.SawOnboarding,
		SignupCTAVariant: account.SignupCTAVariant,
	}
}

func (h *AuthHandler) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
