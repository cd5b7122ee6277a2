package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"commons/internal/domain/entity"
)

// ExternalIdentityModel mirrors the 'external_identities' table. Each row is a
// provider-scoped identity; (provider, uid) is unique and account_id stays
// NULL until the identity is bound to a local account.
type ExternalIdentityModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Provider  string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_identities_provider_uid"`
	UID       string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_identities_provider_uid;column:uid"`
	AccountID *uuid.UUID `gorm:"type:uuid;index"`
	Token     string     `gorm:"type:text"`
	Secret    string     `gorm:"type:text"`
	AuthData  datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ExternalIdentityModel) TableName() string {
	return "external_identities"
}

// ToEntity converts the persistence model into a domain entity.
func (m *ExternalIdentityModel) ToEntity() (*entity.ExternalIdentity, error) {
	identity := &entity.ExternalIdentity{
		ID:        m.ID,
		Provider:  entity.ProviderType(m.Provider),
		UID:       m.UID,
		AccountID: m.AccountID,
		Token:     m.Token,
		Secret:    m.Secret,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	if len(m.AuthData) > 0 {
		if err := json.Unmarshal(m.AuthData, &identity.AuthData); err != nil {
			return nil, err
		}
	}

	return identity, nil
}

// ExternalIdentityModelFromEntity converts a domain entity into its persistence model.
func ExternalIdentityModelFromEntity(identity *entity.ExternalIdentity) (*ExternalIdentityModel, error) {
	model := &ExternalIdentityModel{
		ID:        identity.ID,
		Provider:  identity.Provider.String(),
		UID:       identity.UID,
		AccountID: identity.AccountID,
		Token:     identity.Token,
		Secret:    identity.Secret,
		CreatedAt: identity.CreatedAt,
		UpdatedAt: identity.UpdatedAt,
	}

	if identity.AuthData != nil {
		data, err := json.Marshal(identity.AuthData)
		if err != nil {
			return nil, err
		}
		model.AuthData = datatypes.JSON(data)
	}

	return model, nil
}
