package main

// @title Inventory Console API
// @version 1.0
// @description REST API behind the inventory admin console: products, stock movements, suppliers, purchase orders, dashboard, reports and notifications.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	Execute()
}
