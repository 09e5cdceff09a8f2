package service

import (
	"context"
	"time"

	"github.com/powergrid-apps/billkeeper/models"
)

// RegistrarService creates, reads, updates, and deletes consumer records.
// It owns identifier allocation: ids are assigned at creation, never
// client-supplied, and never reused after deletion.
type RegistrarService interface {
	Register(ctx context.Context, candidate models.Consumer) (models.Consumer, error)
	Get(ctx context.Context, id string) (models.Consumer, error)
	List(ctx context.Context) ([]models.Consumer, error)
	Update(ctx context.Context, id string, patch models.ConsumerPatch) (models.Consumer, error)
	Delete(ctx context.Context, id string) error
}

// BillingService generates and settles bills.
type BillingService interface {
	Generate(ctx context.Context, consumerID string, units float64, dueDate time.Time) (models.Bill, error)
	Get(ctx context.Context, billID int64) (models.Bill, error)
	ListByConsumer(ctx context.Context, consumerID string) ([]models.Bill, error)
	Pay(ctx context.Context, billID int64, method string) (models.Bill, error)
}

// AuthService authenticates consumers and manages JWT token lifecycle.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.Token, error)
	CreateToken(ctx context.Context, consumerID string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}
