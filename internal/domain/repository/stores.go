package repository

// Stores agrupa los repositorios atados a una misma transacción.
// Lo construye el TxRunner de cada backend.
type Stores struct {
	Products        ProductRepository
	Stock           StockRepository
	Movements       StockMovementRepository
	Sales           SaleRepository
	Purchases       PurchaseRepository
	Payments        SupplierPaymentRepository
	Orders          OrderRepository
	Transformations TransformationRepository
	Routes          RouteRepository
}
