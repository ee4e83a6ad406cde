package services

import "github.com/yeremiapane/pos-ledger/models"

func DefaultInventory() []models.InventoryItem {
	return []models.InventoryItem{
		{ID: "inv-1", Name: "Tomatoes", Quantity: 20, Unit: "kg", Threshold: 5, Category: "Produce"},
		{ID: "inv-2", Name: "Mozzarella Cheese", Quantity: 8, Unit: "blocks", Threshold: 10, Category: "Dairy"},
		{ID: "inv-3", Name: "Pizza Dough Flour", Quantity: 50, Unit: "kg", Threshold: 20, Category: "Dry Goods"},
		{ID: "inv-4", Name: "Olive Oil", Quantity: 5, Unit: "L", Threshold: 2, Category: "Pantry"},
	}
}

func DefaultVendors() []models.Vendor {
	return []models.Vendor{
		{ID: "ven-1", Name: "Fresh Farm Produce", ContactName: "Jim", Email: "orders@freshfarm.com", Phone: "555-0101", Address: "123 Farm Ln"},
		{ID: "ven-2", Name: "Dairy Best", ContactName: "Sarah", Email: "sales@dairybest.com", Phone: "555-0102", Address: "456 Milk Way"},
	}
}

func DefaultEmployees() []models.Employee {
	return []models.Employee{
		{ID: "emp-1", FirstName: "John", LastName: "Doe", Role: models.EmployeeRoleManager, HourlyRate: 25, PIN: "1234"},
		{ID: "emp-2", FirstName: "Jane", LastName: "Smith", Role: models.EmployeeRoleCashier, HourlyRate: 15, PIN: "5678"},
	}
}

func DefaultLayout() []models.Area {
	return []models.Area{
		{
			ID:   "main-hall",
			Name: "Main Dining",
			Tables: []models.Table{
				{ID: "t1", Label: "1", X: 20, Y: 20, Width: 80, Height: 80, Shape: models.TableShapeRectangle, Seats: 4, Status: models.TableStatusAvailable},
				{ID: "t2", Label: "2", X: 120, Y: 20, Width: 80, Height: 80, Shape: models.TableShapeRectangle, Seats: 4, Status: models.TableStatusOccupied},
			},
		},
	}
}

// DefaultCatalog is the menu served when no external catalog is configured.
func DefaultCatalog() StaticCatalog {
	return StaticCatalog{
		{
			Name: "Pizza",
			Items: []models.MenuItem{
				{
					ID: "pizza-margherita", Category: "Pizza", Name: "Margherita", Price: 12.5,
					Description: "Tomato, mozzarella, basil", Available: true,
					Recipe: []models.RecipeComponent{
						{InventoryItemID: "inv-1", Quantity: 0.2},
						{InventoryItemID: "inv-2", Quantity: 1},
						{InventoryItemID: "inv-3", Quantity: 0.3},
					},
				},
				{
					ID: "pizza-marinara", Category: "Pizza", Name: "Marinara", Price: 10,
					Description: "Tomato, garlic, oregano, olive oil", Available: true,
					Recipe: []models.RecipeComponent{
						{InventoryItemID: "inv-1", Quantity: 0.25},
						{InventoryItemID: "inv-3", Quantity: 0.3},
						{InventoryItemID: "inv-4", Quantity: 0.05},
					},
				},
			},
		},
		{
			Name: "Starters",
			Items: []models.MenuItem{
				{
					ID: "caprese", Category: "Starters", Name: "Caprese Salad", Price: 8,
					Description: "Tomato and mozzarella with olive oil", Available: true,
					Recipe: []models.RecipeComponent{
						{InventoryItemID: "inv-1", Quantity: 0.15},
						{InventoryItemID: "inv-2", Quantity: 0.5},
						{InventoryItemID: "inv-4", Quantity: 0.02},
					},
				},
				{ID: "garlic-bread", Category: "Starters", Name: "Garlic Bread", Price: 4.5, Description: "Baked to order", Available: true},
			},
		},
		{
			Name: "Drinks",
			Items: []models.MenuItem{
				{ID: "lemonade", Category: "Drinks", Name: "House Lemonade", Price: 3.5, Description: "Fresh squeezed", Available: true},
				{ID: "espresso", Category: "Drinks", Name: "Espresso", Price: 2.75, Description: "Double shot", Available: true},
			},
		},
	}
}
