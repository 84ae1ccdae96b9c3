package repository

import (
	"context"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// SupplierPaymentRepository pagos a proveedores.
type SupplierPaymentRepository interface {
	Create(ctx context.Context, payment *entity.SupplierPayment) error
	// ListBySupplier más recientes primero.
	ListBySupplier(ctx context.Context, supplierID string) ([]*entity.SupplierPayment, error)
	// TotalsBySupplier suma de pagos por proveedor, ordenado por proveedor.
	TotalsBySupplier(ctx context.Context) ([]*entity.SupplierTotal, error)
}
