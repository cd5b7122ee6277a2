package model

import (
	"time"

	"github.com/google/uuid"

	"commons/internal/domain/entity"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type AccountModel struct {
	ID                    uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name                  string    `gorm:"type:varchar(100)"`
	Email                 string    `gorm:"type:varchar(255);index"`
	Username              string    `gorm:"type:varchar(100);not null"`
	ProfileImageURL       string    `gorm:"type:text"`
	GithubUsername        string    `gorm:"type:varchar(100);index"`
	TwitterUsername       string    `gorm:"type:varchar(100);index"`
	GithubCreatedAt       *time.Time
	TwitterCreatedAt      *time.Time
	TwitterFollowersCount int `gorm:"not null;default:0"`
	TwitterFollowingCount int `gorm:"not null;default:0"`
	Confirmed             bool
	SawOnboarding         bool
	SignupCTAVariant      string `gorm:"type:varchar(100);column:signup_cta_variant"`
	PasswordDigest        string `gorm:"type:varchar(255)"`
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Identities []ExternalIdentityModel `gorm:"foreignKey:AccountID"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts the persistence model into a domain entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:                    m.ID,
		Name:                  m.Name,
		Email:                 m.Email,
		Username:              m.Username,
		ProfileImageURL:       m.ProfileImageURL,
		GithubUsername:        m.GithubUsername,
		TwitterUsername:       m.TwitterUsername,
		GithubCreatedAt:       m.GithubCreatedAt,
		TwitterCreatedAt:      m.TwitterCreatedAt,
		TwitterFollowersCount: m.TwitterFollowersCount,
		TwitterFollowingCount: m.TwitterFollowingCount,
		Confirmed:             m.Confirmed,
		SawOnboarding:         m.SawOnboarding,
		SignupCTAVariant:      m.SignupCTAVariant,
		PasswordDigest:        m.PasswordDigest,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

// AccountModelFromEntity converts a domain entity into its persistence model.
func AccountModelFromEntity(account *entity.Account) *AccountModel {
	return &AccountModel{
		ID:                    account.ID,
		Name:                  account.Name,
		Email:                 account.Email,
		Username:              account.Username,
		ProfileImageURL:       account.ProfileImageURL,
		GithubUsername:        account.GithubUsername,
		TwitterUsername:       account.TwitterUsername,
		GithubCreatedAt:       account.GithubCreatedAt,
		TwitterCreatedAt:      account.TwitterCreatedAt,
		TwitterFollowersCount: account.TwitterFollowersCount,
		TwitterFollowingCount: account.TwitterFollowingCount,
		Confirmed:             account.Confirmed,
		SawOnboarding:         account.SawOnboarding,
		SignupCTAVariant:      account.SignupCTAVariant,
		PasswordDigest:        account.PasswordDigest,
		CreatedAt:             account.CreatedAt,
		UpdatedAt:             account.UpdatedAt,
	}
}
