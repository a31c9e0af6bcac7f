package usecase

import (
	"bus-booking/internal/data/repository"
	"bus-booking/internal/pricing"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	Inventory   InventoryService
	Order       OrderService
	Payment     PaymentService
	Admin       AdminService
	Idempotency *IdempotencyGuard
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	pricingSvc := pricing.NewService()
	orderSvc := NewOrderService(repo, pricingSvc, config, log)

	return &Service{
		Auth:        NewAuthService(repo, config, log),
		Inventory:   NewInventoryService(repo, pricingSvc, log),
		Order:       orderSvc,
		Payment:     NewPaymentService(repo, orderSvc, config, log),
		Admin:       NewAdminService(repo, log),
		Idempotency: NewIdempotencyGuard(repo.Idempotency, config),
	}
}
