package routes

import (
	"MealHive-Backend/internal/api/handlers"
	"MealHive-Backend/internal/middleware"
	"MealHive-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	IngredientHandler handlers.IngredientHandler
	PantryHandler     handlers.PantryHandler
	MealPlanHandler   handlers.MealPlanHandler
	GroceryHandler    handlers.GroceryHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Ingredients()
	c.Pantry()
	c.MealPlans()
	c.Grocery()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Post("/families", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.CreateFamily)
		user.Post("/families/join", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.JoinFamily)
		user.Get("/families/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.GetFamily)
	}
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/v1/ingredients", c.Middleware.AuthMiddleware(c.JWTService))

	ingredients.Get("", c.IngredientHandler.GetIngredients)
	ingredients.Get("/:id", c.IngredientHandler.GetIngredientDetails)
	ingredients.Patch("/:id", c.IngredientHandler.UpdateIngredientMetadata)
}

func (c *Config) Pantry() {
	pantry := c.App.Group("/api/v1/pantry", c.Middleware.AuthMiddleware(c.JWTService))

	pantry.Post("", c.PantryHandler.AddPantryItem)
	pantry.Get("", c.PantryHandler.GetPantryItems)
	pantry.Put("/:id", c.PantryHandler.UpdatePantryItem)
	pantry.Delete("/:id", c.PantryHandler.DeletePantryItem)
}

func (c *Config) MealPlans() {
	mealPlans := c.App.Group("/api/v1/meal-plans", c.Middleware.AuthMiddleware(c.JWTService))

	mealPlans.Post("/meals", c.MealPlanHandler.CreateMeal)
	mealPlans.Post("/meals/image", c.MealPlanHandler.UploadMealImage)
	mealPlans.Post("", c.MealPlanHandler.CreateMealPlan)
	mealPlans.Get("", c.MealPlanHandler.GetMealPlans)

	// Reconciliation against the plan lives under grocery semantics.
	mealPlans.Post("/:meal_plan_id/grocery-list", c.GroceryHandler.RebuildFromMealPlan)
}

func (c *Config) Grocery() {
	grocery := c.App.Group("/api/v1/grocery-lists", c.Middleware.AuthMiddleware(c.JWTService))

	grocery.Post("", c.GroceryHandler.CreateGroceryList)
	grocery.Get("", c.GroceryHandler.GetGroceryLists)
	grocery.Post("/:id/items", c.GroceryHandler.AddManualItem)
	grocery.Post("/:id/sync", c.GroceryHandler.SyncListWithPantry)
	grocery.Post("/:id/share", c.GroceryHandler.ShareList)
	grocery.Patch("/items/:item_id/toggle", c.GroceryHandler.ToggleItemChecked)
	grocery.Post("/items/:item_id/purchase", c.GroceryHandler.MarkItemPurchased)
	grocery.Delete("/items/:item_id", c.GroceryHandler.DeleteItem)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
