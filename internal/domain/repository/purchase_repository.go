package repository

import (
	"context"
	"time"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// PurchaseRepository persistencia de compras (supplier_purchases y supplier_purchase_items).
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	CreateItem(ctx context.Context, item *entity.PurchaseItem) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	GetItems(ctx context.Context, purchaseID string) ([]*entity.PurchaseItem, error)
	ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Purchase, error)
	UpdatePaymentStatus(ctx context.Context, id, status string) error
	// ListDuePayments compras impagas con vencimiento de pago en [from, to].
	ListDuePayments(ctx context.Context, from, to time.Time) ([]*entity.Purchase, error)
	// TotalsBySupplier suma de total_amount por proveedor, ordenado por proveedor.
	TotalsBySupplier(ctx context.Context) ([]*entity.SupplierTotal, error)
}
