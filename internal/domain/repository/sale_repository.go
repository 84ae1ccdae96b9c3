package repository

import (
	"context"
	"time"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// SaleRepository persistencia de ventas (sales_records y sale_items).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Sale, error)
	// ListPendingDelivery ventas en estado Pendiente que no están en ninguna hoja de ruta.
	ListPendingDelivery(ctx context.Context) ([]*entity.Sale, error)
	// ListInactiveCustomers ids de clientes con ventas cuya última compra es anterior a since.
	ListInactiveCustomers(ctx context.Context, since time.Time) ([]string, error)
	// Los Update* devuelven domain.ErrNotFound si la venta no existe.
	UpdateCommissionStatus(ctx context.Context, id, status string, paymentDate *time.Time) error
	UpdateDeliveryStatus(ctx context.Context, id, status string, date time.Time) error
}
