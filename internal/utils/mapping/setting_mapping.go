package mapping

import (
	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	"github.com/SscSPs/multi_currency_app/internal/models"
)

// ToDomainSetting converts a model Setting to a domain Setting
func ToDomainSetting(m models.Setting) domain.Setting {
	return domain.Setting{
		ID:         m.ID,
		Key:        m.Key,
		Value:      m.Value,
		Timestamps: ToDomainTimestamps(m.Timestamps),
	}
}
