package usecase

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

const searchLimit = 10

// ProductUseCase casos de uso del catálogo. El stock se maneja solo vía el ledger.
type ProductUseCase struct {
	tx     inventory.TxRunner
	repo   repository.ProductRepository
	stock  repository.StockRepository
	ledger *inventory.Ledger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	tx inventory.TxRunner,
	repo repository.ProductRepository,
	stock repository.StockRepository,
	ledger *inventory.Ledger,
) *ProductUseCase {
	return &ProductUseCase{tx: tx, repo: repo, stock: stock, ledger: ledger}
}

// Create crea el producto y, si viene initialStock > 0, registra el stock inicial en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("el nombre del producto es requerido")
	}
	if in.Price.Set && in.Price.IsNegative() {
		return nil, domain.Invalid("el precio no puede ser negativo")
	}
	if in.CostPrice.Set && in.CostPrice.IsNegative() {
		return nil, domain.Invalid("el costo no puede ser negativo")
	}
	if in.InitialStock.Set && in.InitialStock.IsNegative() {
		return nil, domain.Invalid("el stock inicial no puede ser negativo")
	}
	expiration, err := dto.ParseDate(in.ExpirationDate)
	if err != nil {
		return nil, domain.Invalid("%s", err.Error())
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:             entity.NewID(),
		Name:           name,
		Price:          in.Price.Decimal,
		Unit:           in.Unit,
		CostPrice:      in.CostPrice.Decimal,
		LotNumber:      in.LotNumber,
		ExpirationDate: expiration,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	stock := decimal.Zero
	err = uc.tx.Run(ctx, func(s repository.Stores) error {
		if err := s.Products.Create(ctx, product); err != nil {
			return err
		}
		if !in.InitialStock.Set || in.InitialStock.IsZero() {
			return nil
		}
		mov, err := uc.ledger.AdjustInTx(ctx, s, inventory.AdjustInput{
			ProductID:    product.ID,
			Change:       in.InitialStock.Decimal,
			MovementType: entity.MovementInitialStock,
			Reason:       "Stock inicial",
		})
		if err != nil {
			return err
		}
		stock = mov.NewQuantity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, stock), nil
}

// GetByID obtiene un producto con su stock.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Entity: "producto", ID: id}
	}
	level, err := uc.stock.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, level.Quantity), nil
}

// Update actualiza los datos del producto. El stock solo cambia vía /api/stock o las operaciones.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Entity: "producto", ID: id}
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("el nombre del producto es requerido")
		}
		product.Name = name
	}
	if in.Price.Set {
		if in.Price.IsNegative() {
			return nil, domain.Invalid("el precio no puede ser negativo")
		}
		product.Price = in.Price.Decimal
	}
	if in.CostPrice.Set {
		if in.CostPrice.IsNegative() {
			return nil, domain.Invalid("el costo no puede ser negativo")
		}
		product.CostPrice = in.CostPrice.Decimal
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.LotNumber != nil {
		product.LotNumber = *in.LotNumber
	}
	if in.ExpirationDate != nil {
		expiration, err := dto.ParseDate(*in.ExpirationDate)
		if err != nil {
			return nil, domain.Invalid("%s", err.Error())
		}
		product.ExpirationDate = expiration
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// List catálogo completo con stock.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListWithStock(ctx)
	if err != nil {
		return nil, err
	}
	return toProductList(list), nil
}

// Search busca por nombre; término vacío devuelve lista vacía.
func (uc *ProductUseCase) Search(ctx context.Context, term string) ([]dto.ProductResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []dto.ProductResponse{}, nil
	}
	list, err := uc.repo.Search(ctx, term, searchLimit)
	if err != nil {
		return nil, err
	}
	return toProductList(list), nil
}

// Delete elimina un producto (stock e historial en cascada).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toProductList(list []*entity.ProductStock) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(&p.Product, p.Stock))
	}
	return items
}

func toProductResponse(p *entity.Product, stock decimal.Decimal) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Price:          p.Price,
		Unit:           p.Unit,
		CostPrice:      p.CostPrice,
		LotNumber:      p.LotNumber,
		ExpirationDate: p.ExpirationDate,
		Stock:          stock,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
