package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"commons/internal/domain/entity"
	"commons/internal/domain/repository"
	"commons/internal/domain/service"

	"github.com/pkg/errors"
)

// avatarSizeSuffix is the size marker some providers append to avatar URLs.
// It is removed everywhere in the URL, not only at the end.
const avatarSizeSuffix = "_normal"

// placeholderCredentialLength is the length of the random throwaway
// credential assigned to accounts that only authenticate via a provider.
const placeholderCredentialLength = 20

// providerSyncFunc applies one provider's raw-payload fields onto an account.
type providerSyncFunc func(account *entity.Account, assertion *service.Assertion)

// providerSyncs maps each recognized provider to its attribute sync.
// Adding a provider means adding an entry here, not new branching.
var providerSyncs = map[entity.ProviderType]providerSyncFunc{
	entity.ProviderTypeTwitter: syncTwitterAttributes,
	entity.ProviderTypeGithub:  syncGithubAttributes,
}

// profileSyncer applies provider-reported profile data onto accounts, on both
// the creation and the update path of a resolution.
type profileSyncer struct {
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	logger      *slog.Logger
}

func newProfileSyncer(accountRepo repository.AccountRepository, hasher service.PasswordHasher, logger *slog.Logger) *profileSyncer {
	return &profileSyncer{
		accountRepo: accountRepo,
		hasher:      hasher,
		logger:      logger,
	}
}

// CreateAccount builds and persists a new account from the assertion.
// Before creating it re-checks for an existing account by per-provider
// username; a hit is reused instead of creating a duplicate. The second
// return value reports whether a row was actually created.
func (ps *profileSyncer) CreateAccount(ctx context.Context, assertion *service.Assertion, ctaVariant string) (*entity.Account, bool, error) {
	nickname := assertion.Info.Nickname

	if nickname != "" {
		existing, err := ps.accountRepo.FindByProviderUsername(ctx, assertion.Provider, nickname)
		if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
			return nil, false, errors.Wrap(err, "failed to re-check account by provider username")
		}
		if existing != nil {
			ps.logger.Info("Reusing account matched by provider username",
				slog.String("provider", assertion.Provider.String()),
				slog.Any("accountID", existing.ID),
			)

			return existing, false, nil
		}
	}

	placeholder, err := randomToken(placeholderCredentialLength)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to generate placeholder credential")
	}
	digest, err := ps.hasher.Hash(placeholder)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to hash placeholder credential")
	}

	account := &entity.Account{
		Name:             assertion.RawString("name"),
		Email:            assertion.Info.Email,
		Username:         nickname,
		ProfileImageURL:  normalizeAvatarURL(assertion.Info.Image),
		SignupCTAVariant: ctaVariant,
		PasswordDigest:   digest,
		Confirmed:        true,
		SawOnboarding:    !seesOnboarding(ctaVariant),
	}
	if account.Name == "" {
		account.Name = nickname
	}
	account.SetProviderUsername(assertion.Provider, nickname)
	applyProviderSync(account, assertion)

	if err := ps.accountRepo.Create(ctx, account); err != nil {
		return nil, false, errors.Wrap(err, "failed to create account")
	}

	return account, true, nil
}

// UpdateAccount refreshes an existing account from the assertion and persists it.
func (ps *profileSyncer) UpdateAccount(ctx context.Context, account *entity.Account, assertion *service.Assertion) error {
	nickname := assertion.Info.Nickname
	if nickname != account.ProviderUsername(assertion.Provider) {
		account.SetProviderUsername(assertion.Provider, nickname)
	}
	applyProviderSync(account, assertion)

	// The provider vouched for this identity; no local confirmation step remains.
	account.Confirmed = true

	if err := ps.accountRepo.Update(ctx, account); err != nil {
		return errors.Wrap(err, "failed to update account")
	}

	return nil
}

// applyProviderSync copies provider-specific fields from the raw payload onto
// the account. Assertions without raw data, and unrecognized providers, no-op.
func applyProviderSync(account *entity.Account, assertion *service.Assertion) {
	if !assertion.HasRaw() {
		return
	}
	sync, ok := providerSyncs[assertion.Provider]
	if !ok {
		return
	}
	sync(account, assertion)
}

func syncTwitterAttributes(account *entity.Account, assertion *service.Assertion) {
	if ts, ok := parseProviderTime(assertion.RawString("created_at")); ok {
		account.TwitterCreatedAt = &ts
	}
	account.TwitterFollowersCount = coerceInt(assertion.Raw["followers_count"])
	account.TwitterFollowingCount = coerceInt(assertion.Raw["friends_count"])
}

func syncGithubAttributes(account *entity.Account, assertion *service.Assertion) {
	if ts, ok := parseProviderTime(assertion.RawString("created_at")); ok {
		account.GithubCreatedAt = &ts
	}
}

// normalizeAvatarURL strips the provider size suffix from an avatar URL.
func normalizeAvatarURL(imageURL string) string {
	return strings.ReplaceAll(imageURL, avatarSizeSuffix, "")
}

// providerTimeLayouts are the timestamp shapes seen in provider payloads:
// ISO 8601 from GitHub, the legacy ruby-style format from Twitter.
var providerTimeLayouts = []string{
	time.RFC3339,
	time.RubyDate,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 MST",
}

func parseProviderTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range providerTimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}

// coerceInt converts a raw payload value to an int the way dynamic payloads
// demand: JSON numbers, integer strings, and strings with a numeric prefix
// all coerce; everything else is zero.
func coerceInt(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		s := strings.TrimSpace(v)
		end := 0
		if end < len(s) && (s[end] == '-' || s[end] == '+') {
			end++
		}
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
		}
		n, err := strconv.Atoi(s[:end])
		if err != nil {
			return 0
		}

		return n
	default:
		return 0
	}
}

// randomToken returns a hex-encoded random string of the given length.
func randomToken(length int) (string, error) {
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.WithStack(err)
	}

	return hex.EncodeToString(buf)[:length], nil
}
