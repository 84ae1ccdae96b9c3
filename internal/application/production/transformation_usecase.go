// Package production registra transformaciones: consumo de insumos y alta de productos resultantes
// en una sola operación de stock.
package production

import (
	"context"
	"time"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/inventory"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

type TransformationUseCase struct {
	ledger          *inventory.Ledger
	transformations repository.TransformationRepository
}

func NewTransformationUseCase(ledger *inventory.Ledger, transformations repository.TransformationRepository) *TransformationUseCase {
	return &TransformationUseCase{ledger: ledger, transformations: transformations}
}

type transformationRecord struct {
	t     *entity.Transformation
	items []*entity.TransformationItem
	lines []inventory.Line
}

func (r *transformationRecord) Lines() []inventory.Line { return r.lines }

func (r *transformationRecord) InsertHeader(ctx context.Context, s repository.Stores) (string, error) {
	if err := s.Transformations.Create(ctx, r.t); err != nil {
		return "", err
	}
	return r.t.ID, nil
}

func (r *transformationRecord) InsertLine(ctx context.Context, s repository.Stores, headerID string, i int) error {
	it := r.items[i]
	it.TransformationID = headerID
	return s.Transformations.CreateItem(ctx, it)
}

// Create aplica primero todas las entradas (resta protegida) y después todas las salidas (suma).
// Cada línea queda en el historial aunque la auditoría de operaciones esté apagada.
func (uc *TransformationUseCase) Create(ctx context.Context, in dto.CreateTransformationRequest) (string, error) {
	if len(in.Inputs) == 0 || len(in.Outputs) == 0 {
		return "", domain.Invalid("se requieren insumos y productos resultantes")
	}
	rec := &transformationRecord{
		t: &entity.Transformation{ID: entity.NewID(), Date: time.Now().UTC(), Notes: in.Notes},
	}
	add := func(group []dto.TransformationLineRequest, typ, movType string, dir inventory.Direction) error {
		for i, l := range group {
			if !l.Quantity.Set {
				return domain.Invalid("%s %d: la cantidad es requerida", typ, i+1)
			}
			rec.items = append(rec.items, &entity.TransformationItem{
				ID:        entity.NewID(),
				ProductID: l.ProductID,
				Quantity:  l.Quantity.Decimal,
				Type:      typ,
			})
			rec.lines = append(rec.lines, inventory.Line{
				ProductID:    l.ProductID,
				Quantity:     l.Quantity.Decimal,
				Direction:    dir,
				MovementType: movType,
				Reason:       "Transformación",
				Audit:        true,
			})
		}
		return nil
	}
	if err := add(in.Inputs, entity.TransformationInput, entity.MovementTransformationInput, inventory.Out); err != nil {
		return "", err
	}
	if err := add(in.Outputs, entity.TransformationOutput, entity.MovementTransformationOutput, inventory.In); err != nil {
		return "", err
	}
	return uc.ledger.Apply(ctx, rec)
}

// Get devuelve la transformación con entradas y salidas separadas.
func (uc *TransformationUseCase) Get(ctx context.Context, id string) (*dto.TransformationResponse, error) {
	t, err := uc.transformations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, &domain.NotFoundError{Entity: "transformación", ID: id}
	}
	items, err := uc.transformations.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := &dto.TransformationResponse{
		ID:      t.ID,
		Date:    t.Date,
		Notes:   t.Notes,
		Inputs:  []dto.TransformationItemResponse{},
		Outputs: []dto.TransformationItemResponse{},
	}
	for _, it := range items {
		item := dto.TransformationItemResponse{ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity}
		if it.Type == entity.TransformationInput {
			resp.Inputs = append(resp.Inputs, item)
		} else {
			resp.Outputs = append(resp.Outputs, item)
		}
	}
	return resp, nil
}
