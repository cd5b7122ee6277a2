// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
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
)

// accountRepository implements the repository.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a repository.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return accountM.ToEntity(), nil
}

// FindByEmail retrieves a single account by its email address. Email is not
// unique in the accounts table; the oldest match wins so repeated sign-ins
// keep resolving to the same account.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at ASC").
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return accountM.ToEntity(), nil
}

// FindByProviderUsername retrieves an account whose per-provider username
// column matches the given value.
func (repo *accountRepository) FindByProviderUsername(ctx context.Context, provider entity.ProviderType, username string) (*entity.Account, error) {
	column, ok := providerUsernameColumns[provider]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where(column+" = ?", username).
		Order("created_at ASC").
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by provider username")
	}

	return accountM.ToEntity(), nil
}

// Create persists a new account entity to the database and backfills the
// generated ID and timestamps onto the passed entity.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := model.AccountModelFromEntity(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("account already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// Update modifies an existing account entity in the database.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := model.AccountModelFromEntity(account)

	if err := repo.db.WithContext(ctx).Save(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("account already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountUpdateFailed.WrapMessage("missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update account")
	}

	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// providerUsernameColumns maps each provider to the accounts column that
// stores its username. SQL identifiers never come from request input.
var providerUsernameColumns = map[entity.ProviderType]string{
	entity.ProviderTypeGithub:  "github_username",
	entity.ProviderTypeTwitter: "twitter_username",
}
