package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribuidora-api/internal/application/auth"
	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/inventory"
	"github.com/jhoicas/distribuidora-api/internal/application/logistics"
	"github.com/jhoicas/distribuidora-api/internal/application/notifications"
	"github.com/jhoicas/distribuidora-api/internal/application/production"
	"github.com/jhoicas/distribuidora-api/internal/application/purchasing"
	"github.com/jhoicas/distribuidora-api/internal/application/sales"
	"github.com/jhoicas/distribuidora-api/internal/application/usecase"
	"github.com/jhoicas/distribuidora-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/distribuidora-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// API completa sobre SQLite en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminUsername = "admin"
	adminPassword = "admin-password-123"
)

func newTestAPI(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:", true)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stores := sqlite.NewStores(db)
	tx := sqlite.NewTxRunner(db)
	ledger := inventory.NewLedger(tx, stores.Products, stores.Movements, inventory.Options{
		Logger: zerolog.Nop(),
	})
	authUC := auth.NewAuthUseCase(sqlite.NewUserRepository(db), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	created, err := authUC.EnsureAdmin(ctx, adminUsername, adminPassword)
	require.NoError(t, err)
	require.True(t, created)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           authUC,
		ProductUC:        usecase.NewProductUseCase(tx, stores.Products, stores.Stock, ledger),
		Ledger:           ledger,
		SaleUC:           sales.NewSaleUseCase(ledger, stores.Sales, decimal.RequireFromString("0.05")),
		OrderUC:          sales.NewOrderUseCase(ledger, stores.Orders),
		PurchaseUC:       purchasing.NewPurchaseUseCase(ledger, stores.Purchases),
		PaymentUC:        purchasing.NewPaymentUseCase(stores.Purchases, stores.Payments),
		TransformationUC: production.NewTransformationUseCase(ledger, stores.Transformations),
		RouteUC:          logistics.NewRouteUseCase(tx, stores.Sales, stores.Routes),
		Notifications:    notifications.New(stores.Products, stores.Purchases, stores.Sales, decimal.NewFromInt(5)),
		JWTSecret:        testJWTSecret,
	})
	return app
}

// call envía un JSON y decodifica la respuesta en out (si no es nil).
func call(t *testing.T, app *fiber.App, method, path, token string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func loginAdmin(t *testing.T, app *fiber.App) string {
	t.Helper()
	var out dto.LoginResponse
	status := call(t, app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Username: adminUsername, Password: adminPassword}, &out)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "admin", out.User.Role)
	return "Bearer " + out.Token
}

func createProduct(t *testing.T, app *fiber.App, token, name, initialStock string) string {
	t.Helper()
	var out dto.ProductResponse
	status := call(t, app, http.MethodPost, "/api/products", token,
		`{"name":"`+name+`","price":"100","unit":"kg","initialStock":"`+initialStock+`"}`, &out)
	require.Equal(t, http.StatusCreated, status)
	return out.ID
}

func productStock(t *testing.T, app *fiber.App, token, id string) decimal.Decimal {
	t.Helper()
	var out dto.ProductResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/products/"+id, token, nil, &out))
	return out.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_LoginInvalido_Retorna401(t *testing.T) {
	app := newTestAPI(t)
	var out dto.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Username: adminUsername, Password: "incorrecta"}, &out)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", out.Code)
}

func TestAPI_ProductoConStockInicial_RegistraHistorial(t *testing.T) {
	app := newTestAPI(t)
	token := loginAdmin(t, app)
	id := createProduct(t, app, token, "Harina", "10")

	assert.True(t, productStock(t, app, token, id).Equal(decimal.NewFromInt(10)))

	var history []dto.StockMovementResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/products/"+id+"/stock-history", token, nil, &history))
	require.Len(t, history, 1)
	assert.Equal(t, "initial_stock", history[0].MovementType)
	assert.True(t, history[0].NewQuantity.Equal(decimal.NewFromInt(10)))
}

func TestAPI_VentaSinStock_NoPersisteNada(t *testing.T) {
	app := newTestAPI(t)
	token := loginAdmin(t, app)
	a := createProduct(t, app, token, "A", "10")
	b := createProduct(t, app, token, "B", "1")

	// La segunda línea excede el stock: la primera tampoco debe descontarse.
	body := `{"salespersonId":"sp-1","customerId":"c-1","items":[
		{"productId":"` + a + `","quantity":3,"price":"100"},
		{"productId":"` + b + `","quantity":2,"price":"50"}]}`
	var errOut dto.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/sales", token, body, &errOut)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errOut.Code)

	assert.True(t, productStock(t, app, token, a).Equal(decimal.NewFromInt(10)))
	assert.True(t, productStock(t, app, token, b).Equal(decimal.NewFromInt(1)))

	var list []dto.SaleResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/sales", token, nil, &list))
	assert.Empty(t, list)
}

func TestAPI_VentaExitosa_DescuentaYCalculaComision(t *testing.T) {
	app := newTestAPI(t)
	token := loginAdmin(t, app)
	a := createProduct(t, app, token, "A", "10")

	var created dto.CreatedResponse
	status := call(t, app, http.MethodPost, "/api/sales", token,
		`{"salespersonId":"sp-1","customerId":"c-1","items":[{"productId":"`+a+`","quantity":"4","price":"25"}]}`, &created)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, created.ID)

	assert.True(t, productStock(t, app, token, a).Equal(decimal.NewFromInt(6)))

	var sale dto.SaleResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/sales/"+created.ID, token, nil, &sale))
	assert.True(t, sale.SaleAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, sale.CommissionAmount.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "Pendiente", sale.DeliveryStatus)
	require.Len(t, sale.Items, 1)
}

func TestAPI_VendedorNoPuedeAjustarStock(t *testing.T) {
	app := newTestAPI(t)
	token := loginAdmin(t, app)
	id := createProduct(t, app, token, "A", "10")

	status := call(t, app, http.MethodPut, "/api/stock/"+id, tokenForRole(t, "vendedor"),
		`{"changeQuantity":5}`, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAPI_AjusteConDecimalConComa(t *testing.T) {
	app := newTestAPI(t)
	token := loginAdmin(t, app)
	id := createProduct(t, app, token, "A", "10")

	var out dto.AdjustStockResponse
	status := call(t, app, http.MethodPut, "/api/stock/"+id, token,
		`{"changeQuantity":"2,5","reason":"recuento"}`, &out)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, out.Movement.NewQuantity.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "manual_adjustment", out.Movement.MovementType)
}

func TestAPI_AjusteNoNumerico_Retorna400(t *testing.T) {
	app := newTestAPI(t)
	token := loginAdmin(t, app)
	id := createProduct(t, app, token, "A", "10")

	var out dto.ErrorResponse
	status := call(t, app, http.MethodPut, "/api/stock/"+id, token, `{"changeQuantity":"diez"}`, &out)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", out.Code)
	assert.True(t, productStock(t, app, token, id).Equal(decimal.NewFromInt(10)))
}

func TestAPI_AjusteQueDejaNegativo_Retorna400(t *testing.T) {
	app := newTestAPI(t)
	token := loginAdmin(t, app)
	id := createProduct(t, app, token, "A", "3")

	var out dto.ErrorResponse
	status := call(t, app, http.MethodPut, "/api/stock/"+id, token, `{"changeQuantity":-5}`, &out)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
}

func TestAPI_ProductoInexistente_Retorna404(t *testing.T) {
	app := newTestAPI(t)
	token := loginAdmin(t, app)

	var out dto.ErrorResponse
	status := call(t, app, http.MethodGet, "/api/products/no-existe/stock-history", token, nil, &out)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", out.Code)
}

func TestAPI_CompraYTransformacion(t *testing.T) {
	app := newTestAPI(t)
	token := loginAdmin(t, app)
	raw := createProduct(t, app, token, "Materia prima", "0")
	out := createProduct(t, app, token, "Producto final", "0")

	status := call(t, app, http.MethodPost, "/api/purchases", token,
		`{"supplierId":"s-1","purchaseDate":"2026-01-15","items":[{"productId":"`+raw+`","quantity":"20","costPrice":"3"}]}`, nil)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, productStock(t, app, token, raw).Equal(decimal.NewFromInt(20)))

	var created dto.CreatedResponse
	status = call(t, app, http.MethodPost, "/api/transformations", token,
		`{"notes":"envasado","inputs":[{"productId":"`+raw+`","quantity":8}],"outputs":[{"productId":"`+out+`","quantity":4}]}`, &created)
	require.Equal(t, http.StatusCreated, status)

	assert.True(t, productStock(t, app, token, raw).Equal(decimal.NewFromInt(12)))
	assert.True(t, productStock(t, app, token, out).Equal(decimal.NewFromInt(4)))

	var tr dto.TransformationResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/transformations/"+created.ID, token, nil, &tr))
	assert.Len(t, tr.Inputs, 1)
	assert.Len(t, tr.Outputs, 1)

	var purchases []dto.PurchaseResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/suppliers/s-1/purchases", token, nil, &purchases))
	require.Len(t, purchases, 1)
	assert.True(t, purchases[0].TotalAmount.Equal(decimal.NewFromInt(60)))
}

func TestAPI_VendedorRegistraVentaPropia(t *testing.T) {
	app := newTestAPI(t)
	token := loginAdmin(t, app)
	a := createProduct(t, app, token, "A", "10")

	// El salespersonId del body se ignora: manda el del token.
	var created dto.CreatedResponse
	status := call(t, app, http.MethodPost, "/api/sales", tokenForRole(t, "vendedor"),
		`{"salespersonId":"otro","customerId":"c-1","items":[{"productId":"`+a+`","quantity":1,"price":10}]}`, &created)
	require.Equal(t, http.StatusCreated, status)

	var sale dto.SaleResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/sales/"+created.ID, token, nil, &sale))
	assert.Equal(t, testSalespersonID, sale.SalespersonID)
}

func TestAPI_PagosYDeudaDeProveedor(t *testing.T) {
	app := newTestAPI(t)
	token := loginAdmin(t, app)
	a := createProduct(t, app, token, "Tomate", "0")

	// Costo con coma decimal: 4 × 2,25 = 9.
	status := call(t, app, http.MethodPost, "/api/purchases", token,
		`{"supplierId":"s-1","items":[{"productId":"`+a+`","quantity":"4","costPrice":"2,25"}]}`, nil)
	require.Equal(t, http.StatusCreated, status)

	var payment dto.SupplierPaymentResponse
	status = call(t, app, http.MethodPost, "/api/suppliers/s-1/payments", token,
		`{"paymentAmount":"4,5","paymentDate":"2026-03-01","paymentMethod":"efectivo"}`, &payment)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "s-1", payment.SupplierID)

	var errOut dto.ErrorResponse
	status = call(t, app, http.MethodPost, "/api/suppliers/s-1/payments", token, `{"paymentAmount":"10"}`, &errOut)
	assert.Equal(t, http.StatusBadRequest, status)

	var payments []dto.SupplierPaymentResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/suppliers/s-1/payments", token, nil, &payments))
	require.Len(t, payments, 1)

	var debts []dto.SupplierDebtResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/suppliers/debts", token, nil, &debts))
	require.Len(t, debts, 1)
	assert.True(t, debts[0].TotalPurchased.Equal(decimal.NewFromInt(9)))
	assert.True(t, debts[0].Balance.Equal(decimal.RequireFromString("4.5")))

	assert.Equal(t, http.StatusForbidden,
		call(t, app, http.MethodGet, "/api/suppliers/debts", tokenForRole(t, "vendedor"), nil, nil))
}
