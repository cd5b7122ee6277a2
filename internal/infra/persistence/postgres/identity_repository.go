package postgres

import (
	"context"

	"commons/internal/domain/entity"
	domainerrors "commons/internal/domain/errors"
	"commons/internal/domain/repository"
	"commons/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// identityRepository implements the repository.IdentityRepository interface using GORM.
type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository is the constructor for identityRepository.
func NewIdentityRepository(db *gorm.DB) repository.IdentityRepository {
	return &identityRepository{db: db}
}

// FindOrCreate retrieves the identity keyed by (provider, uid), inserting an
// unlinked row when none exists. The unique index on (provider, uid) makes a
// concurrent insert race resolve to a single row.
func (repo *identityRepository) FindOrCreate(ctx context.Context, provider entity.ProviderType, uid string) (*entity.ExternalIdentity, error) {
	identityM := model.ExternalIdentityModel{
		Provider: provider.String(),
		UID:      uid,
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider"}, {Name: "uid"}},
			DoNothing: true,
		}).
		Create(&identityM).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create external identity")
	}

	// DoNothing skips the RETURNING clause on conflict; re-read to get the
	// winning row either way.
	var found model.ExternalIdentityModel
	err = repo.db.WithContext(ctx).
		Where("provider = ? AND uid = ?", provider.String(), uid).
		First(&found).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load external identity")
	}

	identity, err := found.ToEntity()
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode external identity payload")
	}

	return identity, nil
}

// Save refreshes the mutable credential fields of an identity: token, secret
// and the raw provider payload. The account link is never written here.
func (repo *identityRepository) Save(ctx context.Context, identity *entity.ExternalIdentity) error {
	identityM, err := model.ExternalIdentityModelFromEntity(identity)
	if err != nil {
		return errors.Wrap(err, "failed to encode external identity payload")
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ExternalIdentityModel{}).
		Where("id = ?", identity.ID).
		Updates(map[string]any{
			"token":     identityM.Token,
			"secret":    identityM.Secret,
			"auth_data": identityM.AuthData,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to save external identity")
	}
	if result.RowsAffected == 0 {
		return repository.ErrIdentityNotFound
	}

	return nil
}

// FindByProviderAndAccount retrieves the identity of the given provider that
// is linked to the given account.
func (repo *identityRepository) FindByProviderAndAccount(ctx context.Context, provider entity.ProviderType, accountID uuid.UUID) (*entity.ExternalIdentity, error) {
	var identityM model.ExternalIdentityModel
	err := repo.db.WithContext(ctx).
		Where("provider = ? AND account_id = ?", provider.String(), accountID).
		First(&identityM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, errors.Wrap(err, "failed to find external identity by provider and account")
	}

	identity, err := identityM.ToEntity()
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode external identity payload")
	}

	return identity, nil
}

// BindAccount links an identity to an account only when the identity is not
// yet linked. When a concurrent resolution won the race the conditional
// update writes nothing and the stored link is read back onto the entity.
func (repo *identityRepository) BindAccount(ctx context.Context, identity *entity.ExternalIdentity, accountID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ExternalIdentityModel{}).
		Where("id = ? AND account_id IS NULL", identity.ID).
		Update("account_id", accountID)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to bind external identity")
	}

	if result.RowsAffected > 0 {
		id := accountID
		identity.AccountID = &id

		return nil
	}

	// Lost the race or already linked: surface the stored link.
	var identityM model.ExternalIdentityModel
	err := repo.db.WithContext(ctx).
		Select("account_id").
		Where("id = ?", identity.ID).
		First(&identityM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrIdentityNotFound
		}

		return errors.Wrap(err, "failed to read back external identity link")
	}
	identity.AccountID = identityM.AccountID

	return nil
}
