package purchasing

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// PaymentUseCase pagos a proveedores y saldo adeudado. No mueve stock.
type PaymentUseCase struct {
	purchases repository.PurchaseRepository
	payments  repository.SupplierPaymentRepository
}

func NewPaymentUseCase(purchases repository.PurchaseRepository, payments repository.SupplierPaymentRepository) *PaymentUseCase {
	return &PaymentUseCase{purchases: purchases, payments: payments}
}

// Register guarda un pago. Monto positivo y fecha son obligatorios.
func (uc *PaymentUseCase) Register(ctx context.Context, supplierID string, in dto.CreateSupplierPaymentRequest) (*dto.SupplierPaymentResponse, error) {
	supplierID = strings.TrimSpace(supplierID)
	if supplierID == "" {
		return nil, domain.Invalid("el proveedor es requerido")
	}
	if !in.Amount.Set || !in.Amount.IsPositive() {
		return nil, domain.Invalid("monto y fecha son obligatorios: el monto debe ser mayor a cero")
	}
	date, err := dto.ParseDate(in.PaymentDate)
	if err != nil {
		return nil, domain.Invalid("%s", err.Error())
	}
	if date == nil {
		return nil, domain.Invalid("monto y fecha son obligatorios: falta la fecha de pago")
	}

	p := &entity.SupplierPayment{
		ID:            entity.NewID(),
		SupplierID:    supplierID,
		Amount:        in.Amount.Decimal,
		PaymentDate:   *date,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		Notes:         in.Notes,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPaymentResponse(p), nil
}

func (uc *PaymentUseCase) ListBySupplier(ctx context.Context, supplierID string) ([]dto.SupplierPaymentResponse, error) {
	list, err := uc.payments.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierPaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPaymentResponse(p))
	}
	return out, nil
}

// Debts saldo por proveedor con compras o pagos registrados: mayor deuda primero.
func (uc *PaymentUseCase) Debts(ctx context.Context) ([]dto.SupplierDebtResponse, error) {
	purchased, err := uc.purchases.TotalsBySupplier(ctx)
	if err != nil {
		return nil, err
	}
	paid, err := uc.payments.TotalsBySupplier(ctx)
	if err != nil {
		return nil, err
	}

	bySupplier := make(map[string]*dto.SupplierDebtResponse, len(purchased))
	get := func(id string) *dto.SupplierDebtResponse {
		d, ok := bySupplier[id]
		if !ok {
			d = &dto.SupplierDebtResponse{SupplierID: id, TotalPurchased: decimal.Zero, TotalPaid: decimal.Zero}
			bySupplier[id] = d
		}
		return d
	}
	for _, t := range purchased {
		get(t.SupplierID).TotalPurchased = t.Total
	}
	for _, t := range paid {
		get(t.SupplierID).TotalPaid = t.Total
	}

	out := make([]dto.SupplierDebtResponse, 0, len(bySupplier))
	for _, d := range bySupplier {
		d.Balance = d.TotalPurchased.Sub(d.TotalPaid)
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Balance.Cmp(out[j].Balance); c != 0 {
			return c > 0
		}
		return out[i].SupplierID < out[j].SupplierID
	})
	return out, nil
}

func toPaymentResponse(p *entity.SupplierPayment) *dto.SupplierPaymentResponse {
	return &dto.SupplierPaymentResponse{
		ID:            p.ID,
		SupplierID:    p.SupplierID,
		Amount:        p.Amount,
		PaymentDate:   p.PaymentDate,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
	}
}
