package repo

import (
	"fmt"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(suppliers []models.Supplier) []string {
	out := make([]string, len(suppliers))
	for i, s := range suppliers {
		out[i] = s.Name
	}
	return out
}

func TestQuerySuppliers_Filters(t *testing.T) {
	all := FixtureSuppliers(time.Now())
	minRating := 4.1
	maxCredit := 20000.0

	tests := []struct {
		name    string
		filters SupplierFilters
		want    []string
	}{
		{"no filters", SupplierFilters{}, []string{"Furniture Plus", "Office Depot", "Tech Solutions Inc."}},
		{"search by contact", SupplierFilters{Search: "sarah"}, []string{"Furniture Plus"}},
		{"search by code", SupplierFilters{Search: "sup-0003"}, []string{"Office Depot"}},
		{"type", SupplierFilters{Type: []string{"manufacturer", "wholesaler"}}, []string{"Furniture Plus", "Office Depot"}},
		{"category overlap", SupplierFilters{Category: []string{"IT Services"}}, []string{"Tech Solutions Inc."}},
		{"priority", SupplierFilters{Priority: []string{"high"}}, []string{"Tech Solutions Inc."}},
		{"risk", SupplierFilters{RiskLevel: []string{"medium"}}, []string{"Furniture Plus"}},
		{"min rating", SupplierFilters{MinRating: &minRating}, []string{"Furniture Plus", "Tech Solutions Inc."}},
		{"max credit", SupplierFilters{MaxCreditLimit: &maxCredit}, []string{"Office Depot"}},
		{"tags", SupplierFilters{Tags: []string{"preferred"}}, []string{"Tech Solutions Inc."}},
		{"status miss", SupplierFilters{Status: []string{"suspended"}}, []string{}},
		{"combined", SupplierFilters{Status: []string{"active"}, MinRating: &minRating, Search: "tech"}, []string{"Tech Solutions Inc."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := QuerySuppliers(all, tt.filters, SupplierSort{}, Pagination{})
			assert.Equal(t, tt.want, names(page.Data))
			assert.Equal(t, len(tt.want), page.Total)
		})
	}
}

func TestQuerySuppliers_Sort(t *testing.T) {
	all := FixtureSuppliers(time.Now())

	tests := []struct {
		sort SupplierSort
		want []string
	}{
		{SupplierSort{Field: "rating", Desc: true}, []string{"Tech Solutions Inc.", "Furniture Plus", "Office Depot"}},
		{SupplierSort{Field: "total_orders"}, []string{"Furniture Plus", "Office Depot", "Tech Solutions Inc."}},
		{SupplierSort{Field: "total_value", Desc: true}, []string{"Tech Solutions Inc.", "Furniture Plus", "Office Depot"}},
		{SupplierSort{Field: "created_at"}, []string{"Tech Solutions Inc.", "Furniture Plus", "Office Depot"}},
		{SupplierSort{Field: "last_contact_date", Desc: true}, []string{"Tech Solutions Inc.", "Furniture Plus", "Office Depot"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s desc=%v", tt.sort.Field, tt.sort.Desc), func(t *testing.T) {
			page := QuerySuppliers(all, SupplierFilters{}, tt.sort, Pagination{})
			assert.Equal(t, tt.want, names(page.Data))
		})
	}
}

func TestQuerySuppliers_Pagination(t *testing.T) {
	var all []models.Supplier
	for i := 1; i <= 30; i++ {
		all = append(all, models.Supplier{ID: i, Name: fmt.Sprintf("Supplier %02d", i)})
	}

	first := QuerySuppliers(all, SupplierFilters{}, SupplierSort{}, Pagination{})
	assert.Equal(t, DefaultPageSize, first.PageSize)
	assert.Len(t, first.Data, 25)
	assert.Equal(t, 30, first.Total)
	assert.Equal(t, 2, first.TotalPages)

	second := QuerySuppliers(all, SupplierFilters{}, SupplierSort{}, Pagination{Page: 2, PageSize: 12})
	require.Len(t, second.Data, 12)
	assert.Equal(t, "Supplier 13", second.Data[0].Name)
	assert.Equal(t, 3, second.TotalPages)

	past := QuerySuppliers(all, SupplierFilters{}, SupplierSort{}, Pagination{Page: 9, PageSize: 12})
	assert.Empty(t, past.Data)
	assert.Equal(t, 30, past.Total)

	capped := QuerySuppliers(all, SupplierFilters{}, SupplierSort{}, Pagination{PageSize: 500})
	assert.Equal(t, MaxPageSize, capped.PageSize)
}

func TestInMemorySupplierRepository_Lifecycle(t *testing.T) {
	r := NewInMemorySupplierRepository(FixtureSuppliers(time.Now())...)

	_, err := r.Create(models.Supplier{Name: "office depot"})
	assert.ErrorIs(t, err, ErrDuplicatedValueUnique)

	created, err := r.Create(models.Supplier{Name: "Acme Parts"})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
	assert.Equal(t, "SUP-0004", created.SupplierCode)
	assert.Equal(t, models.SupplierStatusActive, created.Status)
	assert.Equal(t, models.PriorityMedium, created.Priority)

	s, err := r.SetStatus(created.ID, models.SupplierStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, models.SupplierStatusInactive, s.Status)

	n, err := r.BulkDelete([]int{1, 2, 77})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	deleted, err := r.Delete(77)
	require.NoError(t, err)
	assert.False(t, deleted)

	all, _ := r.GetAll()
	assert.Equal(t, []string{"Office Depot", "Acme Parts"}, names(all))
}
