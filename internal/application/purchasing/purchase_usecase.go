package purchasing

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

// PurchaseUseCase compras a proveedores: suman stock.
type PurchaseUseCase struct {
	ledger    *inventory.Ledger
	purchases repository.PurchaseRepository
}

func NewPurchaseUseCase(ledger *inventory.Ledger, purchases repository.PurchaseRepository) *PurchaseUseCase {
	return &PurchaseUseCase{ledger: ledger, purchases: purchases}
}

// purchaseRecord adapta la compra al ledger (dirección In, crea la fila de stock si falta).
type purchaseRecord struct {
	purchase *entity.Purchase
	items    []*entity.PurchaseItem
	lines    []inventory.Line
}

func (r *purchaseRecord) Lines() []inventory.Line { return r.lines }

func (r *purchaseRecord) InsertHeader(ctx context.Context, s repository.Stores) (string, error) {
	if err := s.Purchases.Create(ctx, r.purchase); err != nil {
		return "", err
	}
	return r.purchase.ID, nil
}

func (r *purchaseRecord) InsertLine(ctx context.Context, s repository.Stores, headerID string, i int) error {
	it := r.items[i]
	it.PurchaseID = headerID
	return s.Purchases.CreateItem(ctx, it)
}

// Create registra la compra y suma el stock de cada línea. purchaseDate vacío = hoy.
func (uc *PurchaseUseCase) Create(ctx context.Context, in dto.CreatePurchaseRequest) (string, error) {
	if strings.TrimSpace(in.SupplierID) == "" {
		return "", domain.Invalid("faltan datos para registrar la compra: proveedor requerido")
	}
	if len(in.Items) == 0 {
		return "", domain.Invalid("la compra debe tener al menos un ítem")
	}
	purchaseDate, err := dto.ParseDate(in.PurchaseDate)
	if err != nil {
		return "", domain.Invalid("%s", err.Error())
	}
	if purchaseDate == nil {
		now := time.Now().UTC()
		purchaseDate = &now
	}
	dueDate, err := dto.ParseDate(in.PaymentDueDate)
	if err != nil {
		return "", domain.Invalid("%s", err.Error())
	}

	rec := &purchaseRecord{}
	total := decimal.Zero
	for i, it := range in.Items {
		if !it.Quantity.Set {
			return "", domain.Invalid("ítem %d: la cantidad es requerida", i+1)
		}
		if !it.CostPrice.Set || it.CostPrice.IsNegative() {
			return "", domain.Invalid("ítem %d: el costo es requerido y no puede ser negativo", i+1)
		}
		item := &entity.PurchaseItem{
			ID:        entity.NewID(),
			ProductID: it.ProductID,
			Quantity:  it.Quantity.Decimal,
			CostPrice: it.CostPrice.Decimal,
		}
		total = total.Add(item.Subtotal())
		rec.items = append(rec.items, item)
		rec.lines = append(rec.lines, inventory.Line{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			Direction:    inventory.In,
			MovementType: entity.MovementPurchase,
			Reason:       "Compra a proveedor",
		})
	}
	rec.purchase = &entity.Purchase{
		ID:             entity.NewID(),
		SupplierID:     in.SupplierID,
		PurchaseDate:   *purchaseDate,
		TotalAmount:    total,
		InvoiceNumber:  in.InvoiceNumber,
		Notes:          in.Notes,
		PaymentDueDate: dueDate,
		PaymentStatus:  entity.StatusPending,
	}
	return uc.ledger.Apply(ctx, rec)
}

func (uc *PurchaseUseCase) Get(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.purchases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{Entity: "compra", ID: id}
	}
	items, err := uc.purchases.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toPurchaseResponse(p)
	resp.Items = make([]dto.PurchaseItemResponse, 0, len(items))
	for _, it := range items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			CostPrice: it.CostPrice,
			Subtotal:  it.Subtotal(),
		})
	}
	return resp, nil
}

func (uc *PurchaseUseCase) ListBySupplier(ctx context.Context, supplierID string) ([]dto.PurchaseResponse, error) {
	list, err := uc.purchases.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPurchaseResponse(p))
	}
	return out, nil
}

// UpdatePaymentStatus cambia el estado de pago. No mueve stock.
func (uc *PurchaseUseCase) UpdatePaymentStatus(ctx context.Context, id, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return domain.Invalid("el estado es requerido")
	}
	return uc.purchases.UpdatePaymentStatus(ctx, id, status)
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	return &dto.PurchaseResponse{
		ID:             p.ID,
		SupplierID:     p.SupplierID,
		PurchaseDate:   p.PurchaseDate,
		TotalAmount:    p.TotalAmount,
		InvoiceNumber:  p.InvoiceNumber,
		Notes:          p.Notes,
		PaymentDueDate: p.PaymentDueDate,
		PaymentStatus:  p.PaymentStatus,
	}
}
