package sales

import (
	"context"

	"github.com/jhoicas/distribuidora-api/internal/application/inventory"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// saleRecord adapta una venta al ledger: cada línea resta stock.
type saleRecord struct {
	sale  *entity.Sale
	items []*entity.SaleItem
	lines []inventory.Line
}

func newSaleRecord(sale *entity.Sale, items []*entity.SaleItem) *saleRecord {
	lines := make([]inventory.Line, len(items))
	for i, it := range items {
		lines[i] = inventory.Line{
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			Direction:    inventory.Out,
			MovementType: entity.MovementSale,
			Reason:       "Venta",
		}
	}
	return &saleRecord{sale: sale, items: items, lines: lines}
}

func (r *saleRecord) Lines() []inventory.Line { return r.lines }

func (r *saleRecord) InsertHeader(ctx context.Context, s repository.Stores) (string, error) {
	if err := s.Sales.Create(ctx, r.sale); err != nil {
		return "", err
	}
	return r.sale.ID, nil
}

func (r *saleRecord) InsertLine(ctx context.Context, s repository.Stores, headerID string, i int) error {
	it := r.items[i]
	it.SaleID = headerID
	return s.Sales.CreateItem(ctx, it)
}

// orderRecord adapta un pedido del carrito al ledger.
type orderRecord struct {
	order *entity.Order
	items []*entity.OrderItem
	lines []inventory.Line
}

func newOrderRecord(order *entity.Order, items []*entity.OrderItem) *orderRecord {
	lines := make([]inventory.Line, len(items))
	for i, it := range items {
		lines[i] = inventory.Line{
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			Direction:    inventory.Out,
			MovementType: entity.MovementOrder,
			Reason:       "Pedido",
		}
	}
	return &orderRecord{order: order, items: items, lines: lines}
}

func (r *orderRecord) Lines() []inventory.Line { return r.lines }

func (r *orderRecord) InsertHeader(ctx context.Context, s repository.Stores) (string, error) {
	if err := s.Orders.Create(ctx, r.order); err != nil {
		return "", err
	}
	return r.order.ID, nil
}

// InsertLine guarda el nombre del catálogo al momento del pedido.
func (r *orderRecord) InsertLine(ctx context.Context, s repository.Stores, headerID string, i int) error {
	it := r.items[i]
	it.OrderID = headerID
	p, err := s.Products.GetByID(ctx, it.ProductID)
	if err != nil {
		return err
	}
	if p != nil {
		it.ProductName = p.Name
	}
	return s.Orders.CreateItem(ctx, it)
}
