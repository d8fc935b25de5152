package model

// Category groups dishes on the menu. DisplayOrder controls the
// position within the customer ordering page.
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     bool   `json:"isActive"`
}

// IngredientCategory groups ingredients for stock-keeping purposes
// (produce, dairy, dry goods and so on).
type IngredientCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// Ingredient is a stock item referenced by dishes. Unit is the
// purchasing unit (kg, l, pcs); CategoryID links to an
// IngredientCategory and SupplierID to the supplier it is bought from.
type Ingredient struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	UnitPrice  float64 `json:"unitPrice"`
	CategoryID string  `json:"categoryId"`
	SupplierID string  `json:"supplierId"`
	IsActive   bool    `json:"isActive"`
}

// Supplier is a vendor the restaurant buys ingredients from.
type Supplier struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	IsActive      bool   `json:"isActive"`
}

// Dish is a sellable menu item. Price is the customer-facing price in
// the tenant's currency; CategoryID links the dish to a menu Category.
type Dish struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	CategoryID  string  `json:"categoryId"`
	IsActive    bool    `json:"isActive"`
}
