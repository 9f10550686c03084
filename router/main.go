package router

import (
	"log"
	"os"
	"time"

	"github.com/bookmypg/api/config"
	"github.com/bookmypg/api/database"
	"github.com/bookmypg/api/handlers"
	admin_handlers "github.com/bookmypg/api/handlers/admin"
	auth_handlers "github.com/bookmypg/api/handlers/auth"
	college_handlers "github.com/bookmypg/api/handlers/college"
	food_handlers "github.com/bookmypg/api/handlers/food"
	media_handlers "github.com/bookmypg/api/handlers/media"
	pg_handlers "github.com/bookmypg/api/handlers/pg"
	transport_handlers "github.com/bookmypg/api/handlers/transport"
	wishlist_handlers "github.com/bookmypg/api/handlers/wishlist"
	"github.com/bookmypg/api/services"
	"github.com/bookmypg/api/services/storage"
	"github.com/bookmypg/api/utils/auth"
	"github.com/bookmypg/api/utils/cache"
	"github.com/bookmypg/api/utils/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to load configuration")
	}

	jwtSecret := getEnv.JWT_SECRET
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "bookmypg-api"
	}

	// Initialize JWT manager with config
	jwtConfig := auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,     // Access token expires in 24 hours
		RefreshExpiry: 7 * 24 * time.Hour, // Refresh token expires in 7 days
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Initialize Redis cache for brute force protection
	redisURL := getEnv.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	// Initialize auth middleware with DB for blacklist checking
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Blob storage for media uploads
	var uploader services.Uploader
	spacesClient, err := storage.NewSpacesClient(storage.SpacesConfig{
		AccessKey: getEnv.SPACES_ACCESS_KEY,
		SecretKey: getEnv.SPACES_SECRET_KEY,
		Bucket:    getEnv.SPACES_BUCKET,
		Region:    getEnv.SPACES_REGION,
		Endpoint:  getEnv.SPACES_ENDPOINT,
		CDNURL:    getEnv.SPACES_CDN_URL,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize Spaces client: %v. Media uploads will fail.", err)
	} else {
		uploader = spacesClient
	}

	// Entity services; existence checks cross-wire through the narrow
	// checker interfaces
	collegeService := services.NewCollegeService(db)
	pgService := services.NewPGService(db, collegeService)
	foodService := services.NewFoodService(db, pgService)
	transportService := services.NewTransportService(db, pgService, collegeService)
	wishlistService := services.NewWishlistService(db, pgService)
	mediaService := services.NewMediaService(db, uploader, pgService, collegeService, foodService, transportService)

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	collegeHandler := college_handlers.NewCollegeHandler(collegeService)
	pgHandler := pg_handlers.NewPGHandler(pgService)
	foodHandler := food_handlers.NewFoodHandler(foodService)
	transportHandler := transport_handlers.NewTransportHandler(transportService)
	wishlistHandler := wishlist_handlers.NewWishlistHandler(wishlistService)
	mediaHandler := media_handlers.NewMediaHandler(mediaService)
	adminHandler := admin_handlers.NewAdminHandler(db)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return handlers.HandleCheckHealth(c, store)
	})

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/refresh", authHandler.Refresh)

	// Protected auth routes
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Get("/profile", authMiddleware.Required(), authHandler.Profile)

	// Colleges routes
	colleges := api.Group("/colleges")
	colleges.Get("/", collegeHandler.List)                                  // Public: list colleges
	colleges.Get("/:id", collegeHandler.Get)                                // Public: get college by ID
	colleges.Post("/", authMiddleware.Required(), collegeHandler.Create)    // Protected: create college
	colleges.Put("/:id", authMiddleware.Required(), collegeHandler.Update)  // Protected: update college
	colleges.Delete("/:id", authMiddleware.Required(), collegeHandler.Delete) // Protected: delete college

	// PGs routes
	pgs := api.Group("/pgs")
	pgs.Get("/", pgHandler.List)                                  // Public: list PGs
	pgs.Get("/:id", pgHandler.Get)                                // Public: get PG by ID
	pgs.Post("/", authMiddleware.Required(), pgHandler.Create)    // Protected: create PG
	pgs.Put("/:id", authMiddleware.Required(), pgHandler.Update)  // Protected: update PG
	pgs.Delete("/:id", authMiddleware.Required(), pgHandler.Delete) // Protected: delete PG with cascade

	// Foods routes
	foods := api.Group("/foods")
	foods.Get("/", foodHandler.List)                                  // Public: list foods
	foods.Get("/:id", foodHandler.Get)                                // Public: get food by ID
	foods.Post("/", authMiddleware.Required(), foodHandler.Create)    // Protected: create food
	foods.Put("/:id", authMiddleware.Required(), foodHandler.Update)  // Protected: update food
	foods.Delete("/:id", authMiddleware.Required(), foodHandler.Delete) // Protected: delete food

	// Transports routes
	transports := api.Group("/transports")
	transports.Get("/", transportHandler.List)                                  // Public: list transports
	transports.Get("/:id", transportHandler.Get)                                // Public: get transport by ID
	transports.Post("/", authMiddleware.Required(), transportHandler.Create)    // Protected: create transport
	transports.Put("/:id", authMiddleware.Required(), transportHandler.Update)  // Protected: update transport
	transports.Delete("/:id", authMiddleware.Required(), transportHandler.Delete) // Protected: delete transport

	// Media upload (protected)
	api.Post("/media", authMiddleware.Required(), mediaHandler.Upload)

	// Wishlist routes (all protected, scoped to the caller)
	wishlist := api.Group("/wishlist", authMiddleware.Required())
	wishlist.Get("/", wishlistHandler.List)
	wishlist.Post("/", wishlistHandler.Add)
	wishlist.Delete("/:pgId", wishlistHandler.Remove)

	// Admin routes
	adminGroup := api.Group("/admin", authMiddleware.RequireAdmin())
	adminGroup.Get("/users", adminHandler.ListUsers)
}
