package sales

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/inventory"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const anonymousCustomer = "Cliente Anónimo"

// OrderUseCase pedidos generados desde el carrito.
type OrderUseCase struct {
	ledger *inventory.Ledger
	orders repository.OrderRepository
}

func NewOrderUseCase(ledger *inventory.Ledger, orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{ledger: ledger, orders: orders}
}

// Create registra el pedido y descuenta stock con la misma guarda que las ventas.
// Si el cliente envía totalAmount debe coincidir con la suma de las líneas.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (string, error) {
	if len(in.Items) == 0 {
		return "", domain.Invalid("el pedido debe tener al menos un ítem")
	}
	items := make([]*entity.OrderItem, 0, len(in.Items))
	total := decimal.Zero
	for i, it := range in.Items {
		if !it.Quantity.Set {
			return "", domain.Invalid("ítem %d: la cantidad es requerida", i+1)
		}
		if !it.PricePerUnit.Set || it.PricePerUnit.IsNegative() {
			return "", domain.Invalid("ítem %d: el precio es requerido y no puede ser negativo", i+1)
		}
		item := &entity.OrderItem{
			ID:           entity.NewID(),
			ProductID:    it.ProductID,
			Quantity:     it.Quantity.Decimal,
			PricePerUnit: it.PricePerUnit.Decimal,
		}
		total = total.Add(item.Subtotal())
		items = append(items, item)
	}
	if in.TotalAmount.Set && !in.TotalAmount.Equal(total) {
		return "", domain.Invalid("el total informado (%s) no coincide con la suma de los ítems (%s)",
			in.TotalAmount.String(), total.String())
	}

	customer := strings.TrimSpace(in.CustomerName)
	if customer == "" {
		customer = anonymousCustomer
	}
	status := in.Status
	if status == "" {
		status = entity.StatusPending
	}
	order := &entity.Order{
		ID:           entity.NewID(),
		CustomerName: customer,
		OrderDate:    time.Now().UTC(),
		Status:       status,
		TotalAmount:  total,
	}
	return uc.ledger.Apply(ctx, newOrderRecord(order, items))
}

func (uc *OrderUseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, &domain.NotFoundError{Entity: "pedido", ID: id}
	}
	items, err := uc.orders.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	resp.Items = make([]dto.OrderItemResponse, 0, len(items))
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			Quantity:     it.Quantity,
			PricePerUnit: it.PricePerUnit,
			Subtotal:     it.Subtotal(),
		})
	}
	return resp, nil
}

func (uc *OrderUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.OrderResponse, error) {
	page.DefaultPage()
	list, err := uc.orders.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOrderResponse(o))
	}
	return out, nil
}

// UpdateStatus cambia el estado del pedido. No mueve stock.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return domain.Invalid("el estado es requerido")
	}
	return uc.orders.UpdateStatus(ctx, id, status)
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		OrderDate:    o.OrderDate,
		Status:       o.Status,
		TotalAmount:  o.TotalAmount,
	}
}
