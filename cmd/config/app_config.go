package config

import (
	"MealHive-Backend/internal/api/handlers"
	"MealHive-Backend/internal/api/routes"
	"MealHive-Backend/internal/middleware"
	"MealHive-Backend/internal/utils"
	applog "MealHive-Backend/internal/utils/logger"
	"MealHive-Backend/internal/utils/storage"
	"MealHive-Backend/pkg/grocery"
	"MealHive-Backend/pkg/ingredient"
	"MealHive-Backend/pkg/jwt"
	"MealHive-Backend/pkg/mealplan"
	"MealHive-Backend/pkg/pantry"
	"MealHive-Backend/pkg/units"
	"MealHive-Backend/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	appLogger, err := applog.New(utils.GetConfig("APP_MODE"))
	if err != nil {
		return nil, err
	}

	// setting up request logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	normalizer := units.NewNormalizer(appLogger)

	// Repository
	userRepository := user.NewUserRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	pantryRepository := pantry.NewPantryRepository(db)
	mealPlanRepository := mealplan.NewMealPlanRepository(db)
	groceryRepository := grocery.NewGroceryRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	ingredientService := ingredient.NewIngredientService(ingredientRepository)
	pantryService := pantry.NewPantryService(pantryRepository, ingredientRepository, userRepository, normalizer, appLogger)
	mealPlanService := mealplan.NewMealPlanService(mealPlanRepository, ingredientRepository, userRepository, normalizer, s3, appLogger)
	groceryService := grocery.NewGroceryService(groceryRepository, pantryService, mealPlanService, ingredientRepository, userRepository, normalizer, appLogger)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService, validator)
	pantryHandler := handlers.NewPantryHandler(pantryService, validator)
	mealPlanHandler := handlers.NewMealPlanHandler(mealPlanService, validator)
	groceryHandler := handlers.NewGroceryHandler(groceryService, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		IngredientHandler: ingredientHandler,
		PantryHandler:     pantryHandler,
		MealPlanHandler:   mealPlanHandler,
		GroceryHandler:    groceryHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
