package repo

import (
	"fmt"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func FixtureCategories(now time.Time) []models.ProductCategory {
	return []models.ProductCategory{
		{ID: 1, Name: "Electronics", Description: "Electronic devices and components", IsActive: true, CreatedAt: now},
		{ID: 2, Name: "Office Supplies", Description: "Office and stationery items", IsActive: true, CreatedAt: now},
		{ID: 3, Name: "Furniture", Description: "Office and home furniture", IsActive: true, CreatedAt: now},
	}
}

func FixtureProducts(now time.Time) []models.Product {
	return []models.Product{
		{
			ID: 1, Name: "Laptop Dell Inspiron 15", Description: "High-performance laptop for business use",
			SKU: "DELL-INS-15", Category: "Electronics", SupplierID: 1, SupplierName: "Tech Solutions Inc.",
			CostPrice: 800, SellingPrice: 1200, CurrentStock: 25, MinStockLevel: 5, MaxStockLevel: 50,
			Unit: "piece", Status: models.ProductStatusActive, Location: "A-01",
			CreatedAt: date(2024, time.January, 15), UpdatedAt: now,
		},
		{
			ID: 2, Name: "Office Chair Ergonomic", Description: "Comfortable ergonomic office chair",
			SKU: "CHAIR-ERG-001", Category: "Furniture", SupplierID: 2, SupplierName: "Furniture Plus",
			CostPrice: 150, SellingPrice: 250, CurrentStock: 3, MinStockLevel: 5, MaxStockLevel: 20,
			Unit: "piece", Status: models.ProductStatusActive, Location: "B-04",
			CreatedAt: date(2024, time.February, 1), UpdatedAt: now,
		},
		{
			ID: 3, Name: "Printer Paper A4", Description: "High quality A4 printing paper",
			SKU: "PAPER-A4-500", Category: "Office Supplies", SupplierID: 3, SupplierName: "Office Depot",
			CostPrice: 5, SellingPrice: 8, CurrentStock: 0, MinStockLevel: 10, MaxStockLevel: 100,
			Unit: "ream", Status: models.ProductStatusActive, Location: "C-12",
			CreatedAt: date(2024, time.January, 20), UpdatedAt: now,
		},
		{
			ID: 4, Name: "Wireless Mouse", Description: "Optical wireless mouse",
			SKU: "MOUSE-WL-001", Category: "Electronics", SupplierID: 1, SupplierName: "Tech Solutions Inc.",
			CostPrice: 15, SellingPrice: 25, CurrentStock: 45, MinStockLevel: 10, MaxStockLevel: 50,
			Unit: "piece", Status: models.ProductStatusActive, Location: "A-03",
			CreatedAt: date(2024, time.February, 10), UpdatedAt: now,
		},
	}
}

func FixtureSuppliers(now time.Time) []models.Supplier {
	lastContact := now.AddDate(0, 0, -7)
	return []models.Supplier{
		{
			ID: 1, Name: "Tech Solutions Inc.", SupplierCode: "SUP-0001", Type: "distributor",
			Categories: []string{"Electronics", "IT Services"},
			Contact: models.ContactInfo{
				ContactPerson: "John Smith", Email: "john@techsolutions.com", Phone: "+1-555-0123",
				Website: "https://www.techsolutions.com",
			},
			BillingAddress: models.Address{
				Street: "123 Tech Street", City: "San Francisco", State: "CA", ZipCode: "94105", Country: "USA",
			},
			PaymentTerms: "Net 30", CreditLimit: 50000, Currency: "USD", LeadTime: 7, MinimumOrderValue: 500,
			ShippingMethods: []string{"Ground", "Express"}, Certifications: []string{"ISO 9001"},
			ComplianceStatus: models.ComplianceCompliant, Status: models.SupplierStatusActive,
			Priority: models.PriorityHigh, Rating: 4.5, RiskLevel: models.RiskLow,
			Metrics: &models.SupplierMetrics{
				TotalOrders: 42, TotalValue: 185000, OnTimeDeliveryRate: 96, QualityScore: 92, AverageLeadTime: 6.5,
				DefectRate: 0.8,
			},
			Tags:      []string{"preferred", "electronics"},
			CreatedAt: date(2024, time.January, 1), UpdatedAt: now, LastContactDate: &lastContact,
		},
		{
			ID: 2, Name: "Furniture Plus", SupplierCode: "SUP-0002", Type: "manufacturer",
			Categories: []string{"Furniture"},
			Contact: models.ContactInfo{
				ContactPerson: "Sarah Johnson", Email: "sarah@furnitureplus.com", Phone: "+1-555-0456",
			},
			BillingAddress: models.Address{
				Street: "456 Furniture Ave", City: "Los Angeles", State: "CA", ZipCode: "90210", Country: "USA",
			},
			PaymentTerms: "Net 15", CreditLimit: 25000, Currency: "USD", LeadTime: 14, MinimumOrderValue: 1000,
			ShippingMethods: []string{"Freight"}, Certifications: []string{"FSC"},
			ComplianceStatus: models.ComplianceCompliant, Status: models.SupplierStatusActive,
			Priority: models.PriorityMedium, Rating: 4.2, RiskLevel: models.RiskMedium,
			Metrics: &models.SupplierMetrics{
				TotalOrders: 18, TotalValue: 64000, OnTimeDeliveryRate: 88, QualityScore: 90, AverageLeadTime: 15,
				DefectRate: 1.5,
			},
			Tags:      []string{"furniture"},
			CreatedAt: date(2024, time.January, 15), UpdatedAt: now,
		},
		{
			ID: 3, Name: "Office Depot", SupplierCode: "SUP-0003", Type: "wholesaler",
			Categories: []string{"Office Supplies", "Cleaning Supplies"},
			Contact: models.ContactInfo{
				ContactPerson: "Mike Wilson", Email: "mike@officedepot.com", Phone: "+1-555-0789",
			},
			BillingAddress: models.Address{
				Street: "789 Office Blvd", City: "New York", State: "NY", ZipCode: "10001", Country: "USA",
			},
			PaymentTerms: "Net 30", CreditLimit: 15000, Currency: "USD", LeadTime: 3, MinimumOrderValue: 100,
			ShippingMethods: []string{"Ground"},
			ComplianceStatus: models.CompliancePending, Status: models.SupplierStatusActive,
			Priority: models.PriorityLow, Rating: 4.0, RiskLevel: models.RiskLow,
			Metrics: &models.SupplierMetrics{
				TotalOrders: 30, TotalValue: 21000, OnTimeDeliveryRate: 93, QualityScore: 85, AverageLeadTime: 3.5,
				DefectRate: 0.4,
			},
			Tags:      []string{"stationery"},
			CreatedAt: date(2024, time.February, 1), UpdatedAt: now,
		},
	}
}

func FixturePurchaseOrders(now time.Time) []models.PurchaseOrder {
	delivered := now.AddDate(0, 0, -20)
	orders := []models.PurchaseOrder{
		{
			ID: 1, OrderNumber: "PO-1001", SupplierID: 2, SupplierName: "Furniture Plus",
			OrderDate: now.AddDate(0, 0, -3), ExpectedDeliveryDate: now.AddDate(0, 0, 11),
			Status: models.OrderStatusPending,
			Items: []models.PurchaseOrderItem{
				{ProductID: 2, ProductName: "Office Chair Ergonomic", SKU: "CHAIR-ERG-001", Quantity: 15, UnitPrice: 150},
			},
			Tax: 180, Shipping: 75, CreatedBy: "manager",
		},
		{
			ID: 2, OrderNumber: "PO-1002", SupplierID: 3, SupplierName: "Office Depot",
			OrderDate: now.AddDate(0, 0, -1), ExpectedDeliveryDate: now.AddDate(0, 0, 2),
			Status: models.OrderStatusOrdered,
			Items: []models.PurchaseOrderItem{
				{ProductID: 3, ProductName: "Printer Paper A4", SKU: "PAPER-A4-500", Quantity: 80, UnitPrice: 5},
			},
			Tax: 32, Shipping: 15, CreatedBy: "manager",
		},
		{
			ID: 3, OrderNumber: "PO-1000", SupplierID: 1, SupplierName: "Tech Solutions Inc.",
			OrderDate: now.AddDate(0, 0, -30), ExpectedDeliveryDate: now.AddDate(0, 0, -18),
			ActualDeliveryDate: &delivered, Status: models.OrderStatusDelivered,
			Items: []models.PurchaseOrderItem{
				{ProductID: 1, ProductName: "Laptop Dell Inspiron 15", SKU: "DELL-INS-15", Quantity: 10, UnitPrice: 800, ReceivedQuantity: 10},
				{ProductID: 4, ProductName: "Wireless Mouse", SKU: "MOUSE-WL-001", Quantity: 20, UnitPrice: 15, ReceivedQuantity: 20},
			},
			Tax: 664, Shipping: 0, CreatedBy: "admin",
		},
	}
	for i := range orders {
		orders[i] = ComputeTotals(orders[i])
		orders[i].CreatedAt = orders[i].OrderDate
		orders[i].UpdatedAt = now
	}
	return orders
}

// FixtureMovements spreads a few movements over the last months so charts have history.
func FixtureMovements(now time.Time) []models.StockMovement {
	type entry struct {
		daysAgo   int
		productID int
		name      string
		kind      string
		qty       int
		prev      int
		reason    string
	}
	entries := []entry{
		{150, 1, "Laptop Dell Inspiron 15", models.MovementIn, 20, 10, "Initial stock"},
		{120, 4, "Wireless Mouse", models.MovementIn, 50, 0, "Initial stock"},
		{95, 1, "Laptop Dell Inspiron 15", models.MovementOut, 8, 30, "Sales order"},
		{70, 3, "Printer Paper A4", models.MovementIn, 40, 0, "Restock"},
		{45, 2, "Office Chair Ergonomic", models.MovementOut, 7, 10, "Sales order"},
		{20, 1, "Laptop Dell Inspiron 15", models.MovementIn, 10, 15, "Purchase order PO-1000"},
		{12, 3, "Printer Paper A4", models.MovementOut, 40, 40, "Office consumption"},
		{5, 4, "Wireless Mouse", models.MovementOut, 5, 50, "Sales order"},
	}

	movements := make([]models.StockMovement, len(entries))
	for i, e := range entries {
		next, _ := nextStock(e.prev, e.kind, e.qty)
		movements[i] = models.StockMovement{
			ID: i + 1, ProductID: e.productID, ProductName: e.name, MovementType: e.kind, Quantity: e.qty,
			PreviousStock: e.prev, NewStock: next, Reason: e.reason, UserID: 1, UserName: "admin",
			Timestamp: now.AddDate(0, 0, -e.daysAgo),
		}
	}
	return movements
}

func FixtureNotifications(now time.Time) []models.NotificationItem {
	return []models.NotificationItem{
		{
			ID: "seed-1", Type: models.NotificationWarning, Title: "Low Stock Alert",
			Message:   "Office Chair Ergonomic is running low on stock (3 remaining)",
			Timestamp: now, ActionURL: "/products/2", ProductID: 2,
		},
		{
			ID: "seed-2", Type: models.NotificationError, Title: "Out of Stock",
			Message:   "Printer Paper A4 is out of stock",
			Timestamp: now.Add(-time.Hour), ActionURL: "/products/3", ProductID: 3,
		},
		{
			ID: "seed-3", Type: models.NotificationInfo, Title: "New Supplier Added",
			Message:   "Office Depot has been added to the supplier list",
			Timestamp: now.Add(-2 * time.Hour), IsRead: true, ActionURL: "/suppliers/3",
		},
	}
}

type fixtureUser struct {
	username, password, email, first, role, department string
}

var fixtureUsers = []fixtureUser{
	{"admin", "admin123", "admin@inventory.com", "Admin", models.RoleAdmin, "IT"},
	{"manager", "manager123", "manager@inventory.com", "Manager", models.RoleManager, "Operations"},
	{"staff", "staff123", "staff@inventory.com", "Staff", models.RoleStaff, "Warehouse"},
}

// SeedUsers stores the demo accounts with bcrypt hashes of their passwords.
func SeedUsers(r UserRepository, cost int) error {
	for _, fu := range fixtureUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(fu.password), cost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", fu.username, err)
		}
		_, err = r.CreateUser(models.User{
			Username:     fu.username,
			Email:        fu.email,
			FirstName:    fu.first,
			LastName:     "User",
			Role:         fu.role,
			IsActive:     true,
			Department:   fu.department,
			Permissions:  models.RolePermissions[fu.role],
			PasswordHash: string(hash),
			CreatedAt:    date(2024, time.January, 1),
		})
		if err != nil {
			return fmt.Errorf("seed user %s: %w", fu.username, err)
		}
	}
	return nil
}
