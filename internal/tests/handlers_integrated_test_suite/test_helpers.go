//go:build integration

package handlers_integrated_test_suite

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/auth"
	"github.com/rogerio-castellano/inventory-console/internal/db/dbtest"
	handler "github.com/rogerio-castellano/inventory-console/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-console/internal/http/router"
	"github.com/rogerio-castellano/inventory-console/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

// suite serves the API over Postgres products and movements. Every other
// collection stays in memory, as it does in production.
type suite struct {
	database     *sql.DB
	productRepo  *repo.PostgresProductRepository
	movementRepo *repo.PostgresMovementRepository
	router       http.Handler
	token        string
}

func newSuite(t *testing.T) *suite {
	t.Helper()
	auth.Configure("integration-secret", time.Hour)
	handler.SetBcryptCost(bcrypt.MinCost)

	database := dbtest.Start(t)
	return &suite{
		database:     database,
		productRepo:  repo.NewPostgresProductRepository(database),
		movementRepo: repo.NewPostgresMovementRepository(database),
	}
}

// reset empties the tables, reloads the sample data and signs in as admin.
func (s *suite) reset(t *testing.T) {
	t.Helper()
	dbtest.Truncate(t, s.database)

	now := time.Now()
	for _, p := range repo.FixtureProducts(now) {
		if _, err := s.productRepo.Create(p); err != nil {
			t.Fatalf("could not seed product %s: %v", p.SKU, err)
		}
	}
	for _, m := range repo.FixtureMovements(now) {
		if _, err := s.movementRepo.Log(m); err != nil {
			t.Fatalf("could not seed movement: %v", err)
		}
	}

	handler.SetProductRepo(s.productRepo)
	handler.SetMovementRepo(s.movementRepo)
	handler.SetStockRecorder(repo.NewPostgresStockRecorder(s.database))
	handler.SetCategoryRepo(repo.NewInMemoryCategoryRepository(repo.FixtureCategories(now)...))
	handler.SetSupplierRepo(repo.NewInMemorySupplierRepository(repo.FixtureSuppliers(now)...))
	handler.SetPurchaseOrderRepo(repo.NewInMemoryPurchaseOrderRepository(repo.FixturePurchaseOrders(now)...))
	handler.SetNotificationRepo(repo.NewInMemoryNotificationRepository(repo.FixtureNotifications(now)...))

	users := repo.NewInMemoryUserRepository()
	if err := repo.SeedUsers(users, bcrypt.MinCost); err != nil {
		t.Fatalf("could not seed users: %v", err)
	}
	handler.SetUserRepo(users)
	handler.SetRefreshStore(auth.NewMemoryRefreshStore(""), time.Hour)

	s.router = router.NewRouter()
	tok, err := generateToken(s.router, "admin", "admin123")
	if err != nil {
		t.Fatal(err)
	}
	s.token = tok
}

func generateToken(r http.Handler, username, password string) (string, error) {
	w := doRequest(r, http.MethodPost, "/login", "", handler.CredentialsRequest{Username: username, Password: password})
	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login as %s failed with %d: %s", username, w.Code, w.Body.String())
	}

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doRequest(r http.Handler, method, path, tok string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
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

func (s *suite) do(method, path string, body any) *httptest.ResponseRecorder {
	return doRequest(s.router, method, path, s.token, body)
}

func (s *suite) importCSV(content, mode string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile("file", "products.csv")
	part.Write([]byte(content))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/products/import?mode="+mode, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](w *httptest.ResponseRecorder) (T, error) {
	var v T
	err := json.NewDecoder(w.Body).Decode(&v)
	return v, err
}
