// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"commons/config"
	deliverycontext "commons/internal/delivery/context"
	"commons/internal/domain/entity"
	domainerrors "commons/internal/domain/errors"
	"commons/internal/domain/repository"
	"commons/internal/domain/service"
	"commons/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	spamAlertChannel = "potential-spam"
	spamAlertSender  = "spam_account_checker_bot"
	spamAlertIcon    = ":exclamation:"
)

// authService implements the AuthUsecase interface.
//
// A resolution deliberately runs outside any cross-record transaction: the
// stores only guarantee single-row atomicity, and the conditional account
// bind (first write wins) is the sole safeguard against concurrent sign-ins
// for the same external identity. Partial writes are resumable because the
// identity lookup is keyed and idempotent.
type authService struct {
	identityRepo   repository.IdentityRepository
	accountRepo    repository.AccountRepository
	syncer         *profileSyncer
	tokenService   service.TokenService
	alertNotifier  service.AlertNotifier
	eventPublisher service.EventPublisher
	profileBaseURL string
	logger         *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	IdentityRepo   repository.IdentityRepository
	AccountRepo    repository.AccountRepository
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	AlertNotifier  service.AlertNotifier
	EventPublisher service.EventPublisher
	Config         *config.Config
	Logger         *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	profileBaseURL := ""
	if params.Config != nil {
		profileBaseURL = strings.TrimSuffix(params.Config.Env.BaseURL, "/")
	}

	return &authService{
		identityRepo:   params.IdentityRepo,
		accountRepo:    params.AccountRepo,
		syncer:         newProfileSyncer(params.AccountRepo, params.Hasher, params.Logger),
		tokenService:   params.TokenService,
		alertNotifier:  params.AlertNotifier,
		eventPublisher: params.EventPublisher,
		profileBaseURL: profileBaseURL,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Resolve maps one sign-in assertion onto exactly one local account and
// returns it with a fresh session.
func (srv *authService) Resolve(ctx context.Context, input *usecase.ResolveInput) (*usecase.ResolveOutput, error) {
	assertion := input.Assertion
	if err := validateAssertion(assertion); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Resolving sign-in assertion",
		slog.String("provider", assertion.Provider.String()),
		slog.String("uid", assertion.UID),
	)

	account, created, err := srv.resolveAccount(ctx, input)
	if err != nil {
		srv.log(ctx).Error("Failed to resolve sign-in assertion",
			slog.String("provider", assertion.Provider.String()),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "failed to resolve sign-in assertion")
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(account.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate session tokens")
	}

	srv.publishResolved(ctx, account, assertion.Provider, created)

	srv.log(ctx).Debug("Sign-in assertion resolved",
		slog.Any("accountID", account.ID),
		slog.Bool("newAccount", created),
	)

	return &usecase.ResolveOutput{
		Account:      account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		NewAccount:   created,
	}, nil
}

// resolveAccount runs the resolution decision procedure. The second return
// value reports whether a new account row was created.
func (srv *authService) resolveAccount(ctx context.Context, input *usecase.ResolveInput) (*entity.Account, bool, error) {
	assertion := input.Assertion

	// 1. Look up or create the identity record, then refresh its credentials
	// and raw payload unconditionally: credentials rotate on every sign-in.
	identity, err := srv.identityRepo.FindOrCreate(ctx, assertion.Provider, assertion.UID)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to find or create external identity")
	}
	identity.Token = assertion.Credentials.Token
	identity.Secret = assertion.Credentials.Secret
	identity.AuthData = assertion.Raw
	if err := srv.identityRepo.Save(ctx, identity); err != nil {
		return nil, false, errors.Wrap(err, "failed to refresh external identity credentials")
	}

	// 2. A signed-in requester who already linked this provider is done:
	// no further writes, no re-sync.
	if input.CurrentAccount != nil {
		_, err := srv.identityRepo.FindByProviderAndAccount(ctx, assertion.Provider, input.CurrentAccount.ID)
		if err == nil {
			srv.log(ctx).Debug("Provider already linked to signed-in account",
				slog.Any("accountID", input.CurrentAccount.ID),
			)

			return input.CurrentAccount, false, nil
		}
		if !errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, false, errors.Wrap(err, "failed to check existing provider link")
		}
	}

	// 3. Pick the candidate account, first match wins.
	candidate, err := srv.findCandidate(ctx, identity, input)
	if err != nil {
		return nil, false, err
	}

	// 4. Create or update.
	created := false
	if candidate == nil {
		candidate, created, err = srv.syncer.CreateAccount(ctx, assertion, input.CTAVariant)
	} else {
		err = srv.syncer.UpdateAccount(ctx, candidate, assertion)
	}
	if err != nil {
		return nil, false, err
	}

	// 5. Bind the identity to the account. First write wins: a link set by a
	// concurrent resolution is observed, never overwritten.
	if !identity.Linked() {
		if err := srv.identityRepo.BindAccount(ctx, identity, candidate.ID); err != nil {
			return nil, false, errors.Wrap(err, "failed to bind external identity to account")
		}
	}

	// 6. The provider vouched for the identity; the account counts as confirmed.
	candidate.Confirmed = true

	// 7. Spam heuristic. Alerting is fire-and-forget; neither an unparseable
	// fallback timestamp nor a delivery failure fails the resolution.
	srv.checkForSpam(ctx, candidate, identity)

	return candidate, created, nil
}

// candidateLookup is one strategy in the ordered account-matching chain.
type candidateLookup func(ctx context.Context) (*entity.Account, error)

// findCandidate evaluates the matching chain lazily and stops at the first
// hit: the signed-in account, then the identity's linked account, then an
// exact email match. Order is a compatibility contract: changing it changes
// which account a given sign-in attaches to.
func (srv *authService) findCandidate(ctx context.Context, identity *entity.ExternalIdentity, input *usecase.ResolveInput) (*entity.Account, error) {
	lookups := []candidateLookup{
		func(_ context.Context) (*entity.Account, error) {
			return input.CurrentAccount, nil
		},
		func(ctx context.Context) (*entity.Account, error) {
			if !identity.Linked() {
				return nil, nil
			}
			account, err := srv.accountRepo.FindByID(ctx, *identity.AccountID)
			if errors.Is(err, repository.ErrAccountNotFound) {
				return nil, nil
			}
			if err != nil {
				return nil, errors.Wrap(err, "failed to load identity-linked account")
			}

			return account, nil
		},
		func(ctx context.Context) (*entity.Account, error) {
			email := input.Assertion.Info.Email
			if email == "" {
				return nil, nil
			}
			account, err := srv.accountRepo.FindByEmail(ctx, email)
			if errors.Is(err, repository.ErrAccountNotFound) {
				return nil, nil
			}
			if err != nil {
				return nil, errors.Wrap(err, "failed to find account by email")
			}

			return account, nil
		},
	}

	for _, lookup := range lookups {
		account, err := lookup(ctx)
		if err != nil {
			return nil, err
		}
		if account != nil {
			return account, nil
		}
	}

	return nil, nil
}

// checkForSpam flags accounts whose provider-reported age falls inside the
// recent window. All failure modes degrade to "not recent".
func (srv *authService) checkForSpam(ctx context.Context, account *entity.Account, identity *entity.ExternalIdentity) {
	recent, err := accountIsRecent(account, identity, time.Now())
	if err != nil {
		srv.log(ctx).Debug("Spam check skipped",
			slog.Any("accountID", account.ID),
			slog.Any("error", err),
		)

		return
	}
	if !recent {
		return
	}

	alert := service.Alert{
		Message: "Potential spam account! " + srv.profileBaseURL + "/" + account.Username,
		Channel: spamAlertChannel,
		Sender:  spamAlertSender,
		Icon:    spamAlertIcon,
	}
	if err := srv.alertNotifier.Notify(ctx, alert); err != nil {
		srv.log(ctx).Warn("Failed to deliver spam alert",
			slog.Any("accountID", account.ID),
			slog.Any("error", err),
		)
	}
}

// publishResolved emits the account-resolved event; failures are logged only.
func (srv *authService) publishResolved(ctx context.Context, account *entity.Account, provider entity.ProviderType, created bool) {
	if srv.eventPublisher == nil {
		return
	}

	event := &service.AccountResolvedEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		AccountID:  account.ID.String(),
		Provider:   provider.String(),
		NewAccount: created,
	}
	if err := srv.eventPublisher.PublishAccountResolved(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish account-resolved event",
			slog.Any("accountID", account.ID),
			slog.Any("error", err),
		)
	}
}

func validateAssertion(assertion *service.Assertion) error {
	if assertion == nil {
		return domainerrors.ErrInvalidAssertion.WrapMessage("assertion is required")
	}
	if assertion.Provider == "" {
		return domainerrors.ErrInvalidAssertion.WrapMessage("assertion provider is required")
	}
	if assertion.UID == "" {
		return domainerrors.ErrInvalidAssertion.WrapMessage("assertion uid is required")
	}

	return nil
}
