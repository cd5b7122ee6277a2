package impl

import (
	"time"

	"commons/internal/domain/entity"

	"github.com/pkg/errors"
)

// recentAccountWindow is how far back the spam heuristic looks: accounts whose
// provider-reported creation time falls after start-of-today minus this window
// are flagged as potentially suspicious.
const recentAccountWindow = 7 * 24 * time.Hour

// errNoAgeReference means neither the synced provider timestamps nor the raw
// payload carry a creation time; such accounts are never considered recent.
var errNoAgeReference = errors.New("no provider creation timestamp available")

// accountAgeReference picks the timestamp the spam heuristic judges an
// account by. The synced per-provider timestamps take precedence over the raw
// payload fallback because they reflect the most recently synced value.
// An unparseable fallback value is an error, left to the caller to swallow.
func accountAgeReference(account *entity.Account, identity *entity.ExternalIdentity) (time.Time, error) {
	if account.GithubCreatedAt != nil {
		return *account.GithubCreatedAt, nil
	}
	if account.TwitterCreatedAt != nil {
		return *account.TwitterCreatedAt, nil
	}

	raw := ""
	if identity.AuthData != nil {
		raw, _ = identity.AuthData["created_at"].(string)
	}
	if raw == "" {
		return time.Time{}, errNoAgeReference
	}
	ts, ok := parseProviderTime(raw)
	if !ok {
		return time.Time{}, errors.Errorf("unparseable provider creation timestamp %q", raw)
	}

	return ts, nil
}

// accountIsRecent reports whether the account's age reference falls inside
// [start-of-today - window, now]. The lower bound is inclusive.
func accountIsRecent(account *entity.Account, identity *entity.ExternalIdentity, now time.Time) (bool, error) {
	ref, err := accountAgeReference(account, identity)
	if err != nil {
		return false, err
	}

	year, month, day := now.Date()
	startOfToday := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	windowStart := startOfToday.Add(-recentAccountWindow)

	return !ref.Before(windowStart) && !ref.After(now), nil
}
