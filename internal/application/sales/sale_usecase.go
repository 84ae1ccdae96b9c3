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

// SaleUseCase registra ventas directas y gestiona sus estados (comisión, entrega).
type SaleUseCase struct {
	ledger      *inventory.Ledger
	sales       repository.SaleRepository
	defaultRate decimal.Decimal
}

// NewSaleUseCase construye el caso de uso. defaultRate se aplica si la venta no trae commissionRate.
func NewSaleUseCase(ledger *inventory.Ledger, sales repository.SaleRepository, defaultRate decimal.Decimal) *SaleUseCase {
	return &SaleUseCase{ledger: ledger, sales: sales, defaultRate: defaultRate}
}

// Create registra la venta y descuenta el stock de cada línea en una sola transacción.
// Si alguna línea no tiene stock suficiente no se guarda nada.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (string, error) {
	if strings.TrimSpace(in.SalespersonID) == "" || strings.TrimSpace(in.CustomerID) == "" {
		return "", domain.Invalid("faltan datos para registrar la venta: vendedor y cliente son requeridos")
	}
	if len(in.Items) == 0 {
		return "", domain.Invalid("la venta debe tener al menos un ítem")
	}
	rate := uc.defaultRate
	if in.CommissionRate.Set {
		rate = in.CommissionRate.Decimal
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return "", domain.Invalid("la tasa de comisión debe estar entre 0 y 1")
	}

	items := make([]*entity.SaleItem, 0, len(in.Items))
	total := decimal.Zero
	for i, it := range in.Items {
		if !it.Quantity.Set {
			return "", domain.Invalid("ítem %d: la cantidad es requerida", i+1)
		}
		if !it.Price.Set || it.Price.IsNegative() {
			return "", domain.Invalid("ítem %d: el precio es requerido y no puede ser negativo", i+1)
		}
		item := &entity.SaleItem{
			ID:                  entity.NewID(),
			ProductID:           it.ProductID,
			Quantity:            it.Quantity.Decimal,
			Price:               it.Price.Decimal,
			PriceOverrideReason: it.PriceOverrideReason,
		}
		total = total.Add(item.Subtotal())
		items = append(items, item)
	}

	deliveryStatus := in.DeliveryStatus
	if deliveryStatus == "" {
		deliveryStatus = entity.StatusPending
	}
	collectionStatus := in.CollectionStatus
	if collectionStatus == "" {
		collectionStatus = entity.StatusPending
	}
	sale := &entity.Sale{
		ID:                   entity.NewID(),
		SalespersonID:        in.SalespersonID,
		CustomerID:           in.CustomerID,
		SaleAmount:           total,
		CommissionRate:       rate,
		CommissionAmount:     total.Mul(rate).Round(2),
		SaleDate:             time.Now().UTC(),
		Notes:                in.Notes,
		PaymentMethod:        in.PaymentMethod,
		IsPaidToCashbox:      in.IsPaidToCashbox,
		DeliveryStatus:       deliveryStatus,
		CollectionStatus:     collectionStatus,
		CommissionPaidStatus: entity.CommissionPending,
	}
	return uc.ledger.Apply(ctx, newSaleRecord(sale, items))
}

// Get devuelve la venta con sus líneas.
func (uc *SaleUseCase) Get(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, &domain.NotFoundError{Entity: "venta", ID: id}
	}
	items, err := uc.sales.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toSaleResponse(sale)
	resp.Items = make([]dto.SaleItemResponse, 0, len(items))
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:                  it.ID,
			ProductID:           it.ProductID,
			Quantity:            it.Quantity,
			Price:               it.Price,
			Subtotal:            it.Subtotal(),
			PriceOverrideReason: it.PriceOverrideReason,
		})
	}
	return resp, nil
}

// List ventas paginadas, más recientes primero.
func (uc *SaleUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.SaleResponse, error) {
	page.DefaultPage()
	list, err := uc.sales.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return ToSaleList(list), nil
}

// UpdateCommission cambia el estado de la comisión. La fecha de pago solo se guarda si queda pagada
// (la informada o, si falta, la actual).
func (uc *SaleUseCase) UpdateCommission(ctx context.Context, id string, in dto.UpdateCommissionRequest) error {
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if status == "" {
		return domain.Invalid("el estado es requerido")
	}
	if status != entity.CommissionPending && status != entity.CommissionPaid {
		return domain.Invalid("estado de comisión %q inválido", in.Status)
	}
	var paymentDate *time.Time
	if status == entity.CommissionPaid {
		d, err := dto.ParseDate(in.PaymentDate)
		if err != nil {
			return domain.Invalid("%s", err.Error())
		}
		if d == nil {
			now := time.Now().UTC()
			d = &now
		}
		paymentDate = d
	}
	return uc.sales.UpdateCommissionStatus(ctx, id, status, paymentDate)
}

// UpdateDeliveryStatus cambia el estado de entrega y registra la fecha. No mueve stock.
func (uc *SaleUseCase) UpdateDeliveryStatus(ctx context.Context, id, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return domain.Invalid("el estado es requerido")
	}
	return uc.sales.UpdateDeliveryStatus(ctx, id, status, time.Now().UTC())
}

// ToSaleList mapea ventas a su DTO sin líneas (listados).
func ToSaleList(list []*entity.Sale) []dto.SaleResponse {
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSaleResponse(s))
	}
	return out
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:                    s.ID,
		SalespersonID:         s.SalespersonID,
		CustomerID:            s.CustomerID,
		SaleAmount:            s.SaleAmount,
		CommissionRate:        s.CommissionRate,
		CommissionAmount:      s.CommissionAmount,
		SaleDate:              s.SaleDate,
		Notes:                 s.Notes,
		PaymentMethod:         s.PaymentMethod,
		IsPaidToCashbox:       s.IsPaidToCashbox,
		DeliveryStatus:        s.DeliveryStatus,
		DeliveryStatusDate:    s.DeliveryStatusDate,
		CollectionStatus:      s.CollectionStatus,
		CommissionPaidStatus:  s.CommissionPaidStatus,
		CommissionPaymentDate: s.CommissionPaymentDate,
	}
}
