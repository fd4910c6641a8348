package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/auth"
	handler "github.com/rogerio-castellano/inventory-console/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-console/internal/http/router"
	"github.com/rogerio-castellano/inventory-console/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var (
	token string

	productRepo      *repo.ObservedProductRepository
	movementRepo     *repo.InMemoryMovementRepository
	supplierRepo     *repo.ObservedSupplierRepository
	orderRepo        *repo.InMemoryPurchaseOrderRepository
	notificationRepo *repo.ObservedNotificationRepository
	userRepo         *repo.InMemoryUserRepository
)

func init() {
	auth.Configure("test-secret", time.Hour)
	handler.SetBcryptCost(bcrypt.MinCost)
	resetRepos()

	var err error
	token, err = generateToken(router.NewRouter(), "admin", "admin123")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

// resetRepos installs fresh repositories holding the sample data.
func resetRepos() {
	now := time.Now()

	var err error
	productRepo, err = repo.NewObservedProductRepository(repo.NewInMemoryProductRepository(repo.FixtureProducts(now)...))
	if err != nil {
		panic(err)
	}
	handler.SetProductRepo(productRepo)
	handler.SetStream("products", productRepo.Changes())

	handler.SetCategoryRepo(repo.NewInMemoryCategoryRepository(repo.FixtureCategories(now)...))

	movementRepo = repo.NewInMemoryMovementRepository(repo.FixtureMovements(now)...)
	handler.SetMovementRepo(movementRepo)

	supplierRepo, err = repo.NewObservedSupplierRepository(repo.NewInMemorySupplierRepository(repo.FixtureSuppliers(now)...))
	if err != nil {
		panic(err)
	}
	handler.SetSupplierRepo(supplierRepo)
	handler.SetStream("suppliers", supplierRepo.Changes())

	orderRepo = repo.NewInMemoryPurchaseOrderRepository(repo.FixturePurchaseOrders(now)...)
	handler.SetPurchaseOrderRepo(orderRepo)

	notificationRepo, err = repo.NewObservedNotificationRepository(repo.NewInMemoryNotificationRepository(repo.FixtureNotifications(now)...))
	if err != nil {
		panic(err)
	}
	handler.SetNotificationRepo(notificationRepo)
	handler.SetStream("notifications", notificationRepo.Changes())

	userRepo = repo.NewInMemoryUserRepository()
	if err := repo.SeedUsers(userRepo, bcrypt.MinCost); err != nil {
		panic(err)
	}
	handler.SetUserRepo(userRepo)
	handler.SetRefreshStore(auth.NewMemoryRefreshStore(""), time.Hour)
}

// newRouter resets the repositories and returns a router over them.
func newRouter() http.Handler {
	resetRepos()
	return router.NewRouter()
}

func login(r http.Handler, username, password string) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPost, "/login", "", handler.CredentialsRequest{Username: username, Password: password})
}

func generateToken(r http.Handler, username, password string) (string, error) {
	w := login(r, username, password)
	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login as %s failed with %d: %s", username, w.Code, w.Body.String())
	}

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

// doRequest sends body as JSON, unless it is already an io.Reader, with bearer tok when set.
func doRequest(r http.Handler, method, path, tok string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func authed(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	return doRequest(r, method, path, token, body)
}

func decode[T any](w *httptest.ResponseRecorder) (T, error) {
	var v T
	err := json.NewDecoder(w.Body).Decode(&v)
	return v, err
}

func validProduct(name, sku string) handler.ProductRequest {
	return handler.ProductRequest{
		Name:          name,
		Description:   "Product used by the handler tests",
		SKU:           sku,
		Category:      "Electronics",
		SupplierID:    1,
		CostPrice:     10,
		SellingPrice:  15,
		CurrentStock:  20,
		MinStockLevel: 5,
		MaxStockLevel: 100,
		Unit:          "piece",
	}
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return authed(r, http.MethodPost, "/products", p)
}

func moveStock(r http.Handler, productID int, m handler.StockMovementRequest) *httptest.ResponseRecorder {
	return authed(r, http.MethodPost, fmt.Sprintf("/products/%d/stock", productID), m)
}

func multipartFile(content []byte, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write(content)

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func importFile(r http.Handler, content []byte, filename, mode string) *httptest.ResponseRecorder {
	body, contentType := multipartFile(content, filename)
	path := "/products/import"
	if mode != "" {
		path += "?mode=" + mode
	}
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
