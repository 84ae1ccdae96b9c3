// Package notifications arma los avisos del panel a partir del stock, los vencimientos,
// las compras impagas y la actividad de los clientes.
package notifications

import (
	"context"
	"time"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	TypeWarning = "warning"
	TypeDanger  = "danger"
	TypeInfo    = "info"
	TypeSuccess = "success"

	lookahead = 30 * 24 * time.Hour
	// inactivity sin compras durante este lapso el cliente aparece como oportunidad.
	inactivity = 30 * 24 * time.Hour
)

// UseCase genera la lista de avisos con formato es-AR.
type UseCase struct {
	products  repository.ProductRepository
	purchases repository.PurchaseRepository
	sales     repository.SaleRepository
	threshold decimal.Decimal
	printer   *message.Printer
	now       func() time.Time
}

// New construye el caso de uso. threshold es la cantidad máxima considerada bajo stock.
func New(products repository.ProductRepository, purchases repository.PurchaseRepository, sales repository.SaleRepository, threshold decimal.Decimal) *UseCase {
	return &UseCase{
		products:  products,
		purchases: purchases,
		sales:     sales,
		threshold: threshold,
		printer:   message.NewPrinter(language.MustParse("es-AR")),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List devuelve los avisos agrupados por tipo: bajo stock, vencimientos, pagos y clientes inactivos.
func (uc *UseCase) List(ctx context.Context) ([]dto.NotificationResponse, error) {
	out := []dto.NotificationResponse{}

	low, err := uc.products.ListLowStock(ctx, uc.threshold)
	if err != nil {
		return nil, err
	}
	for _, l := range low {
		out = append(out, dto.NotificationResponse{
			Type:    TypeWarning,
			Message: uc.printer.Sprintf("Bajo stock: quedan solo %v de %s.", formatQty(l.Quantity), l.ProductName),
		})
	}

	today := uc.now().Truncate(24 * time.Hour)
	until := today.Add(lookahead)

	expiring, err := uc.products.ListExpiring(ctx, today, until)
	if err != nil {
		return nil, err
	}
	for _, p := range expiring {
		lot := p.LotNumber
		if lot == "" {
			lot = "N/A"
		}
		out = append(out, dto.NotificationResponse{
			Type: TypeDanger,
			Message: uc.printer.Sprintf("Vencimiento próximo: %s (lote %s) vence el %s.",
				p.Name, lot, p.ExpirationDate.Format("02/01/2006")),
		})
	}

	due, err := uc.purchases.ListDuePayments(ctx, today, until)
	if err != nil {
		return nil, err
	}
	for _, p := range due {
		invoice := p.InvoiceNumber
		if invoice == "" {
			invoice = "N/A"
		}
		out = append(out, dto.NotificationResponse{
			Type: TypeInfo,
			Message: uc.printer.Sprintf("Pago próximo: vence el pago al proveedor ID %s (fact. %s) por $ %v el %s.",
				p.SupplierID, invoice, formatMoney(p.TotalAmount), p.PaymentDueDate.Format("02/01/2006")),
		})
	}

	inactive, err := uc.sales.ListInactiveCustomers(ctx, uc.now().Add(-inactivity))
	if err != nil {
		return nil, err
	}
	for _, id := range inactive {
		out = append(out, dto.NotificationResponse{
			Type:    TypeSuccess,
			Message: uc.printer.Sprintf("Oportunidad: el cliente ID %s no compra hace más de 30 días.", id),
		})
	}
	return out, nil
}

func formatQty(d decimal.Decimal) number.Formatter {
	return number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(3))
}

func formatMoney(d decimal.Decimal) number.Formatter {
	return number.Decimal(d.InexactFloat64(), number.MinFractionDigits(2), number.MaxFractionDigits(2))
}
