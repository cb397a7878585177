package domain

// List kind names
const (
	ListKindIngredients = "ingredients"
	ListKindShopping    = "shopping"
)

// Backend API paths
const (
	PathCatalogIngredients = "/api/v1/ingredients"
	PathUserIngredients    = "/api/v1/user/ingredient"
	PathUserShoppingList   = "/api/v1/user/shoppList"
	PathUserRecipes        = "/api/v1/user/recipe"
	PathUserMe             = "/api/v1/user/me"
	PathNutrition          = "/api/v1/nutrition"
	PathAuthLogout         = "/api/v1/auth/logout"
	PathAuthSignUp         = "/api/auth/signup"
)
