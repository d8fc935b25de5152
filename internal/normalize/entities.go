package normalize

// Per-entity field tables. Defaults follow the dashboard's rendering
// contract: strings default to "", numbers to 0, isActive to true (a
// record the backend never flagged is shown as live), and ids to ""
// so downstream code can detect an unresolved identity.

var categoryFields = []field{
	{key: "id", def: ""},
	{key: "name", def: ""},
	{key: "description", def: ""},
	{key: "imageUrl", def: ""},
	{key: "displayOrder", def: 0},
	{key: "isActive", def: true},
}

var ingredientCategoryFields = []field{
	{key: "id", def: ""},
	{key: "name", def: ""},
	{key: "description", def: ""},
	{key: "isActive", def: true},
}

var ingredientFields = []field{
	{key: "id", def: ""},
	{key: "name", def: ""},
	{key: "unit", def: ""},
	{key: "unitPrice", def: 0},
	{key: "categoryId", def: ""},
	{key: "supplierId", def: ""},
	{key: "isActive", def: true},
}

var supplierFields = []field{
	{key: "id", def: ""},
	{key: "name", def: ""},
	{key: "contactPerson", def: ""},
	{key: "phone", def: ""},
	{key: "email", def: ""},
	{key: "address", def: ""},
	{key: "isActive", def: true},
}

var dishFields = []field{
	{key: "id", def: ""},
	{key: "name", def: ""},
	{key: "description", def: ""},
	{key: "price", def: 0},
	{key: "imageUrl", def: ""},
	{key: "categoryId", def: ""},
	{key: "isActive", def: true},
}

// The tenant overview DTO omits Id; the default stays "" so the tenant
// service can detect the gap and resolve it by hostname.
var tenantFields = []field{
	{key: "id", def: ""},
	{key: "name", def: ""},
	{key: "hostname", def: ""},
	{key: "description", def: ""},
	{key: "logoUrl", def: ""},
	{key: "isActive", def: true},
}

// Category normalizes a raw menu category object.
func Category(raw map[string]any) map[string]any { return Map(raw, categoryFields) }

// Categories normalizes a raw array of menu categories.
func Categories(raw any) []map[string]any { return Slice(raw, categoryFields) }

// IngredientCategory normalizes a raw ingredient category object.
func IngredientCategory(raw map[string]any) map[string]any {
	return Map(raw, ingredientCategoryFields)
}

// IngredientCategories normalizes a raw array of ingredient categories.
func IngredientCategories(raw any) []map[string]any { return Slice(raw, ingredientCategoryFields) }

// Ingredient normalizes a raw ingredient object.
func Ingredient(raw map[string]any) map[string]any { return Map(raw, ingredientFields) }

// Ingredients normalizes a raw array of ingredients.
func Ingredients(raw any) []map[string]any { return Slice(raw, ingredientFields) }

// Supplier normalizes a raw supplier object.
func Supplier(raw map[string]any) map[string]any { return Map(raw, supplierFields) }

// Suppliers normalizes a raw array of suppliers.
func Suppliers(raw any) []map[string]any { return Slice(raw, supplierFields) }

// Dish normalizes a raw dish object.
func Dish(raw map[string]any) map[string]any { return Map(raw, dishFields) }

// Dishes normalizes a raw array of dishes.
func Dishes(raw any) []map[string]any { return Slice(raw, dishFields) }

// Tenant normalizes a raw tenant object. Identity resolution for
// payloads missing id lives in the tenant service, not here; this stays
// a pure transform.
func Tenant(raw map[string]any) map[string]any { return Map(raw, tenantFields) }

// Tenants normalizes a raw array of tenants.
func Tenants(raw any) []map[string]any { return Slice(raw, tenantFields) }
