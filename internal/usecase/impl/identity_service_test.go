package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"commons/config"
	"commons/internal/domain/entity"
	"commons/internal/domain/repository"
	"commons/internal/domain/service"
	mockRepo "commons/internal/mocks/repository"
	mockService "commons/internal/mocks/service"
	"commons/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authServiceMocks struct {
	identityRepo   *mockRepo.MockIdentityRepository
	accountRepo    *mockRepo.MockAccountRepository
	hasher         *mockService.MockPasswordHasher
	tokenService   *mockService.MockTokenService
	alertNotifier  *mockService.MockAlertNotifier
	eventPublisher *mockService.MockEventPublisher
}

func newTestAuthService(t *testing.T) (usecase.AuthUsecase, *authServiceMocks) {
	t.Helper()

	mocks := &authServiceMocks{
		identityRepo:   mockRepo.NewMockIdentityRepository(t),
		accountRepo:    mockRepo.NewMockAccountRepository(t),
		hasher:         mockService.NewMockPasswordHasher(t),
		tokenService:   mockService.NewMockTokenService(t),
		alertNotifier:  mockService.NewMockAlertNotifier(t),
		eventPublisher: mockService.NewMockEventPublisher(t),
	}

	cfg := &config.Config{}
	cfg.Env.BaseURL = "https://community.example.com"

	svc := NewAuthService(AuthServiceParams{
		IdentityRepo:   mocks.identityRepo,
		AccountRepo:    mocks.accountRepo,
		Hasher:         mocks.hasher,
		TokenService:   mocks.tokenService,
		AlertNotifier:  mocks.alertNotifier,
		EventPublisher: mocks.eventPublisher,
		Config:         cfg,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return svc, mocks
}

func twitterAssertion() *service.Assertion {
	return &service.Assertion{
		Provider: entity.ProviderTypeTwitter,
		UID:      "12345",
		Credentials: service.AssertionCredentials{
			Token:  "oauth-token",
			Secret: "oauth-secret",
		},
		Info: service.AssertionProfile{
			Nickname: "octo",
			Name:     "Octo Cat",
			Email:    "octo@example.com",
			Image:    "https://cdn.example.com/octo_normal.png",
		},
		Raw: map[string]any{
			"name":            "Octo Cat",
			"created_at":      "2024-01-01T00:00:00Z",
			"followers_count": "42",
			"friends_count":   float64(7),
		},
	}
}

func unlinkedIdentity(assertion *service.Assertion) *entity.ExternalIdentity {
	return &entity.ExternalIdentity{
		ID:       uuid.New(),
		Provider: assertion.Provider,
		UID:      assertion.UID,
	}
}

func TestAuthService_Resolve_CreatesNewAccount(t *testing.T) {
	svc, mocks := newTestAuthService(t)
	ctx := context.Background()

	assertion := twitterAssertion()
	identity := unlinkedIdentity(assertion)
	accountID := uuid.New()

	mocks.identityRepo.EXPECT().FindOrCreate(ctx, entity.ProviderTypeTwitter, "12345").Return(identity, nil)
	mocks.identityRepo.EXPECT().Save(ctx, identity).Return(nil)
	mocks.accountRepo.EXPECT().FindByEmail(ctx, "octo@example.com").Return(nil, repository.ErrAccountNotFound)
	mocks.accountRepo.EXPECT().FindByProviderUsername(ctx, entity.ProviderTypeTwitter, "octo").Return(nil, repository.ErrAccountNotFound)
	mocks.hasher.EXPECT().Hash(mock.AnythingOfType("string")).Return("placeholder-digest", nil)
	mocks.accountRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(_ context.Context, account *entity.Account) {
			account.ID = accountID
		}).
		Return(nil)
	mocks.identityRepo.EXPECT().BindAccount(ctx, identity, accountID).
		Run(func(_ context.Context, identity *entity.ExternalIdentity, accountID uuid.UUID) {
			id := accountID
			identity.AccountID = &id
		}).
		Return(nil)
	mocks.tokenService.EXPECT().GenerateTokens(accountID).Return("access-token", "refresh-token", nil)
	mocks.eventPublisher.EXPECT().PublishAccountResolved(ctx, mock.AnythingOfType("*service.AccountResolvedEvent")).Return(nil)

	output, err := svc.Resolve(ctx, &usecase.ResolveInput{
		Assertion:  assertion,
		CTAVariant: "in-feed-cta-v2",
	})

	require.NoError(t, err)
	assert.True(t, output.NewAccount)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)

	account := output.Account
	assert.Equal(t, accountID, account.ID)
	assert.Equal(t, "Octo Cat", account.Name)
	assert.Equal(t, "octo", account.Username)
	assert.Equal(t, "octo", account.TwitterUsername)
	assert.Equal(t, "octo@example.com", account.Email)
	assert.Equal(t, "https://cdn.example.com/octo.png", account.ProfileImageURL)
	assert.Equal(t, "placeholder-digest", account.PasswordDigest)
	assert.True(t, account.Confirmed)
	// "in-feed-cta-v2" belongs to an onboarding variant family, so the
	// onboarding flow is still pending for this account.
	assert.False(t, account.SawOnboarding)
	assert.Equal(t, "in-feed-cta-v2", account.SignupCTAVariant)

	require.NotNil(t, account.TwitterCreatedAt)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), account.TwitterCreatedAt.UTC())
	assert.Equal(t, 42, account.TwitterFollowersCount)
	assert.Equal(t, 7, account.TwitterFollowingCount)

	// Credentials were refreshed onto the identity before anything else.
	assert.Equal(t, "oauth-token", identity.Token)
	assert.Equal(t, "oauth-secret", identity.Secret)
	assert.Equal(t, assertion.Raw, identity.AuthData)
}

func TestAuthService_Resolve_ShortCircuitsWhenAlreadyLinked(t *testing.T) {
	svc, mocks := newTestAuthService(t)
	ctx := context.Background()

	assertion := twitterAssertion()
	identity := unlinkedIdentity(assertion)
	current := &entity.Account{ID: uuid.New(), Username: "octo"}

	mocks.identityRepo.EXPECT().FindOrCreate(ctx, entity.ProviderTypeTwitter, "12345").Return(identity, nil)
	mocks.identityRepo.EXPECT().Save(ctx, identity).Return(nil)
	mocks.identityRepo.EXPECT().FindByProviderAndAccount(ctx, entity.ProviderTypeTwitter, current.ID).
		Return(&entity.ExternalIdentity{ID: identity.ID, AccountID: &current.ID}, nil)
	mocks.tokenService.EXPECT().GenerateTokens(current.ID).Return("access-token", "refresh-token", nil)
	mocks.eventPublisher.EXPECT().PublishAccountResolved(ctx, mock.AnythingOfType("*service.AccountResolvedEvent")).Return(nil)

	output, err := svc.Resolve(ctx, &usecase.ResolveInput{
		Assertion:      assertion,
		CurrentAccount: current,
	})

	require.NoError(t, err)
	assert.False(t, output.NewAccount)
	assert.Same(t, current, output.Account)
	// No account writes happen on the short-circuit path.
	mocks.accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mocks.accountRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAuthService_Resolve_UpdatesIdentityLinkedAccount(t *testing.T) {
	svc, mocks := newTestAuthService(t)
	ctx := context.Background()

	assertion := twitterAssertion()
	existing := &entity.Account{
		ID:              uuid.New(),
		Username:        "octo",
		TwitterUsername: "old-octo",
	}
	identity := &entity.ExternalIdentity{
		ID:        uuid.New(),
		Provider:  assertion.Provider,
		UID:       assertion.UID,
		AccountID: &existing.ID,
	}

	mocks.identityRepo.EXPECT().FindOrCreate(ctx, entity.ProviderTypeTwitter, "12345").Return(identity, nil)
	mocks.identityRepo.EXPECT().Save(ctx, identity).Return(nil)
	mocks.accountRepo.EXPECT().FindByID(ctx, existing.ID).Return(existing, nil)
	mocks.accountRepo.EXPECT().Update(ctx, existing).Return(nil)
	mocks.tokenService.EXPECT().GenerateTokens(existing.ID).Return("access-token", "refresh-token", nil)
	mocks.eventPublisher.EXPECT().PublishAccountResolved(ctx, mock.AnythingOfType("*service.AccountResolvedEvent")).Return(nil)

	output, err := svc.Resolve(ctx, &usecase.ResolveInput{Assertion: assertion})

	require.NoError(t, err)
	assert.False(t, output.NewAccount)
	assert.Equal(t, existing.ID, output.Account.ID)
	// The provider-reported username replaced the stale one.
	assert.Equal(t, "octo", output.Account.TwitterUsername)
	assert.True(t, output.Account.Confirmed)
	// An already-linked identity is never re-bound.
	mocks.identityRepo.AssertNotCalled(t, "BindAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Resolve_BindObservesConcurrentWinner(t *testing.T) {
	svc, mocks := newTestAuthService(t)
	ctx := context.Background()

	assertion := twitterAssertion()
	identity := unlinkedIdentity(assertion)
	accountID := uuid.New()
	winnerID := uuid.New()

	mocks.identityRepo.EXPECT().FindOrCreate(ctx, entity.ProviderTypeTwitter, "12345").Return(identity, nil)
	mocks.identityRepo.EXPECT().Save(ctx, identity).Return(nil)
	mocks.accountRepo.EXPECT().FindByEmail(ctx, "octo@example.com").Return(nil, repository.ErrAccountNotFound)
	mocks.accountRepo.EXPECT().FindByProviderUsername(ctx, entity.ProviderTypeTwitter, "octo").Return(nil, repository.ErrAccountNotFound)
	mocks.hasher.EXPECT().Hash(mock.AnythingOfType("string")).Return("placeholder-digest", nil)
	mocks.accountRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(_ context.Context, account *entity.Account) {
			account.ID = accountID
		}).
		Return(nil)
	// A concurrent resolution bound the identity first; the stored link is
	// observed, not overwritten.
	mocks.identityRepo.EXPECT().BindAccount(ctx, identity, accountID).
		Run(func(_ context.Context, identity *entity.ExternalIdentity, _ uuid.UUID) {
			id := winnerID
			identity.AccountID = &id
		}).
		Return(nil)
	mocks.tokenService.EXPECT().GenerateTokens(accountID).Return("access-token", "refresh-token", nil)
	mocks.eventPublisher.EXPECT().PublishAccountResolved(ctx, mock.AnythingOfType("*service.AccountResolvedEvent")).Return(nil)

	output, err := svc.Resolve(ctx, &usecase.ResolveInput{Assertion: assertion})

	require.NoError(t, err)
	require.NotNil(t, identity.AccountID)
	assert.Equal(t, winnerID, *identity.AccountID)
	assert.Equal(t, accountID, output.Account.ID)
}

func TestAuthService_Resolve_MatchesAccountByEmail(t *testing.T) {
	svc, mocks := newTestAuthService(t)
	ctx := context.Background()

	assertion := twitterAssertion()
	identity := unlinkedIdentity(assertion)
	existing := &entity.Account{
		ID:       uuid.New(),
		Email:    "octo@example.com",
		Username: "octo",
	}

	mocks.identityRepo.EXPECT().FindOrCreate(ctx, entity.ProviderTypeTwitter, "12345").Return(identity, nil)
	mocks.identityRepo.EXPECT().Save(ctx, identity).Return(nil)
	mocks.accountRepo.EXPECT().FindByEmail(ctx, "octo@example.com").Return(existing, nil)
	mocks.accountRepo.EXPECT().Update(ctx, existing).Return(nil)
	mocks.identityRepo.EXPECT().BindAccount(ctx, identity, existing.ID).Return(nil)
	mocks.tokenService.EXPECT().GenerateTokens(existing.ID).Return("access-token", "refresh-token", nil)
	mocks.eventPublisher.EXPECT().PublishAccountResolved(ctx, mock.AnythingOfType("*service.AccountResolvedEvent")).Return(nil)

	output, err := svc.Resolve(ctx, &usecase.ResolveInput{Assertion: assertion})

	require.NoError(t, err)
	assert.False(t, output.NewAccount)
	assert.Equal(t, existing.ID, output.Account.ID)
	mocks.accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Resolve_AlertFailureDoesNotFailResolution(t *testing.T) {
	svc, mocks := newTestAuthService(t)
	ctx := context.Background()

	assertion := twitterAssertion()
	assertion.Provider = entity.ProviderTypeGithub
	// A freshly created provider profile trips the spam heuristic.
	assertion.Raw["created_at"] = time.Now().Add(-24 * time.Hour).Format(time.RFC3339)
	identity := unlinkedIdentity(assertion)
	accountID := uuid.New()

	mocks.identityRepo.EXPECT().FindOrCreate(ctx, entity.ProviderTypeGithub, "12345").Return(identity, nil)
	mocks.identityRepo.EXPECT().Save(ctx, identity).Return(nil)
	mocks.accountRepo.EXPECT().FindByEmail(ctx, "octo@example.com").Return(nil, repository.ErrAccountNotFound)
	mocks.accountRepo.EXPECT().FindByProviderUsername(ctx, entity.ProviderTypeGithub, "octo").Return(nil, repository.ErrAccountNotFound)
	mocks.hasher.EXPECT().Hash(mock.AnythingOfType("string")).Return("placeholder-digest", nil)
	mocks.accountRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(_ context.Context, account *entity.Account) {
			account.ID = accountID
		}).
		Return(nil)
	mocks.identityRepo.EXPECT().BindAccount(ctx, identity, accountID).Return(nil)
	mocks.alertNotifier.EXPECT().Notify(ctx, service.Alert{
		Message: "Potential spam account! https://community.example.com/octo",
		Channel: "potential-spam",
		Sender:  "spam_account_checker_bot",
		Icon:    ":exclamation:",
	}).Return(errors.New("webhook unreachable"))
	mocks.tokenService.EXPECT().GenerateTokens(accountID).Return("access-token", "refresh-token", nil)
	mocks.eventPublisher.EXPECT().PublishAccountResolved(ctx, mock.AnythingOfType("*service.AccountResolvedEvent")).Return(nil)

	output, err := svc.Resolve(ctx, &usecase.ResolveInput{Assertion: assertion})

	require.NoError(t, err)
	assert.True(t, output.NewAccount)
	assert.Equal(t, "octo", output.Account.GithubUsername)
	require.NotNil(t, output.Account.GithubCreatedAt)
}

func TestAuthService_Resolve_PropagatesStorageFailure(t *testing.T) {
	svc, mocks := newTestAuthService(t)
	ctx := context.Background()

	assertion := twitterAssertion()

	mocks.identityRepo.EXPECT().FindOrCreate(ctx, entity.ProviderTypeTwitter, "12345").
		Return(nil, errors.New("connection refused"))

	output, err := svc.Resolve(ctx, &usecase.ResolveInput{Assertion: assertion})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.Contains(t, err.Error(), "failed to find or create external identity")
}

func TestAuthService_Resolve_RejectsInvalidAssertion(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	output, err := svc.Resolve(ctx, &usecase.ResolveInput{
		Assertion: &service.Assertion{Provider: entity.ProviderTypeTwitter},
	})
	require.Error(t, err)
	assert.Nil(t, output)

	output, err = svc.Resolve(ctx, &usecase.ResolveInput{Assertion: nil})
	require.Error(t, err)
	assert.Nil(t, output)
}

func TestAuthService_Resolve_EventPublishFailureIsSwallowed(t *testing.T) {
	svc, mocks := newTestAuthService(t)
	ctx := context.Background()

	assertion := twitterAssertion()
	identity := unlinkedIdentity(assertion)
	existing := &entity.Account{ID: uuid.New(), Email: "octo@example.com", Username: "octo"}

	mocks.identityRepo.EXPECT().FindOrCreate(ctx, entity.ProviderTypeTwitter, "12345").Return(identity, nil)
	mocks.identityRepo.EXPECT().Save(ctx, identity).Return(nil)
	mocks.accountRepo.EXPECT().FindByEmail(ctx, "octo@example.com").Return(existing, nil)
	mocks.accountRepo.EXPECT().Update(ctx, existing).Return(nil)
	mocks.identityRepo.EXPECT().BindAccount(ctx, identity, existing.ID).Return(nil)
	mocks.tokenService.EXPECT().GenerateTokens(existing.ID).Return("access-token", "refresh-token", nil)
	mocks.eventPublisher.EXPECT().PublishAccountResolved(ctx, mock.AnythingOfType("*service.AccountResolvedEvent")).
		Return(errors.New("broker offline"))

	output, err := svc.Resolve(ctx, &usecase.ResolveInput{Assertion: assertion})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, output.Account.ID)
}
