package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/buffmasterbran/pirani-connector/internal/domain/mapping"
)

// MappingEntryModel is the persistence model for the mapping Entry domain entity.
type MappingEntryModel struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key"`
	Category         mapping.Category `gorm:"type:varchar(32);not null;index:idx_mapping_entry_category,priority:1;index:idx_mapping_entry_lookup,priority:1"`
	SourceCode       string           `gorm:"type:varchar(255);index:idx_mapping_entry_lookup,priority:2"`
	SourceFixedValue string           `gorm:"type:varchar(255)"`
	TargetID         string           `gorm:"type:varchar(100);not null"`
	Kind             mapping.Kind     `gorm:"type:varchar(40)"`
	AccountScope     string           `gorm:"type:varchar(10)"`
	IsActive         bool             `gorm:"not null;default:true"`
	CustomFieldID    string           `gorm:"type:varchar(100)"`
	CreatedAt        time.Time        `gorm:"not null"`
	UpdatedAt        time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MappingEntryModel) TableName() string {
	return "mapping_entries"
}

// ToDomain converts the persistence model to a domain Entry.
func (m *MappingEntryModel) ToDomain() *mapping.Entry {
	return &mapping.Entry{
		ID:               m.ID,
		Category:         m.Category,
		SourceCode:       m.SourceCode,
		SourceFixedValue: m.SourceFixedValue,
		TargetID:         m.TargetID,
		Kind:             m.Kind,
		AccountScope:     mapping.AccountScope(m.AccountScope),
		IsActive:         m.IsActive,
		CustomFieldID:    m.CustomFieldID,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Entry.
func (m *MappingEntryModel) FromDomain(e *mapping.Entry) {
	m.ID = e.ID
	m.Category = e.Category
	m.SourceCode = e.SourceCode
	m.SourceFixedValue = e.SourceFixedValue
	m.TargetID = e.TargetID
	m.Kind = e.Kind
	m.AccountScope = string(e.AccountScope)
	m.IsActive = e.IsActive
	m.CustomFieldID = e.CustomFieldID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// MappingEntryModelFromDomain creates a new persistence model from a domain Entry.
func MappingEntryModelFromDomain(e *mapping.Entry) *MappingEntryModel {
	m := &MappingEntryModel{}
	m.FromDomain(e)
	return m
}

// MappingDefaultModel is the persistence model for per-category mapping defaults.
// There is at most one row per category.
type MappingDefaultModel struct {
	Category    mapping.Category `gorm:"type:varchar(32);primary_key"`
	SourceValue string           `gorm:"type:varchar(255)"`
	TargetValue string           `gorm:"type:varchar(255)"`
	UpdatedAt   time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MappingDefaultModel) TableName() string {
	return "mapping_defaults"
}

// ToDomain converts the persistence model to a domain Default.
func (m *MappingDefaultModel) ToDomain() *mapping.Default {
	return &mapping.Default{
		Category:    m.Category,
		SourceValue: m.SourceValue,
		TargetValue: m.TargetValue,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Default.
func (m *MappingDefaultModel) FromDomain(d *mapping.Default) {
	m.Category = d.Category
	m.SourceValue = d.SourceValue
	m.TargetValue = d.TargetValue
	m.UpdatedAt = d.UpdatedAt
}

// MappingDefaultModelFromDomain creates a new persistence model from a domain Default.
func MappingDefaultModelFromDomain(d *mapping.Default) *MappingDefaultModel {
	m := &MappingDefaultModel{}
	m.FromDomain(d)
	return m
}
