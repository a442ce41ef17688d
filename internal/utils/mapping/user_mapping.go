package mapping

import (
	"database/sql"
	"time"

	"github.com/pharmaflow/pharma_returns_app/internal/core/domain"
	"github.com/pharmaflow/pharma_returns_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	var refreshExpiry sql.NullTime
	if d.RefreshTokenExpiryTime != nil {
		refreshExpiry = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	return models.User{
		UserID:                 d.UserID,
		Username:               d.Username,
		Email:                  d.Email,
		CompanyName:            sql.NullString{String: d.CompanyName, Valid: d.CompanyName != ""},
		Role:                   string(d.Role),
		PasswordHash:           d.PasswordHash,
		AuditFields:            ToModelAuditFields(d.AuditFields),
		DeletedAt:              d.DeletedAt,
		RefreshTokenHash:       sql.NullString{String: d.RefreshTokenHash, Valid: d.RefreshTokenHash != ""},
		RefreshTokenExpiryTime: refreshExpiry,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	var refreshExpiry *time.Time
	if m.RefreshTokenExpiryTime.Valid {
		t := m.RefreshTokenExpiryTime.Time
		refreshExpiry = &t
	}
	return domain.User{
		UserID:                 m.UserID,
		Username:               m.Username,
		Email:                  m.Email,
		CompanyName:            m.CompanyName.String,
		Role:                   domain.UserRole(m.Role),
		PasswordHash:           m.PasswordHash,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
		DeletedAt:              m.DeletedAt,
		RefreshTokenHash:       m.RefreshTokenHash.String,
		RefreshTokenExpiryTime: refreshExpiry,
	}
}

// ToDomainUserSlice converts a slice of model Users to domain form
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
