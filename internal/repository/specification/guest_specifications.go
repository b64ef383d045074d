package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// BySessionAndUser narrows to one (session, user) link attempt record.
type BySessionAndUser struct {
	SessionID string
	UserID    uuid.UUID
}

func (s BySessionAndUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ? AND user_id = ?", s.SessionID, s.UserID)
}

type ByCompanyID struct {
	CompanyID uuid.UUID
}

func (s ByCompanyID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("company_id = ?", s.CompanyID)
}

type ByContactID struct {
	ContactID uuid.UUID
}

func (s ByContactID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("contact_id = ?", s.ContactID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

type ByOrderID struct {
	OrderID string
}

func (s ByOrderID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_id = ?", s.OrderID)
}

type SelectedOnly struct{}

func (s SelectedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("selected = ?", true)
}
