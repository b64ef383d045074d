package unitofwork

import (
	"context"

	"jobreach-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	GuestSessionRepository() contract.GuestSessionRepository
	LinkAttemptRepository() contract.LinkAttemptRepository
	ProfileRepository() contract.ProfileRepository
	CompanyRepository() contract.CompanyRepository
	ContactRepository() contract.ContactRepository
	InteractionRepository() contract.InteractionRepository
	MessageRepository() contract.MessageRepository
	SubscriptionRepository() contract.SubscriptionRepository
}
