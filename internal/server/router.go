package server

import (
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library

	"gameaccount_store/internal/api"
	"gameaccount_store/internal/metrics"
	"gameaccount_store/internal/middleware"
	"gameaccount_store/internal/service"
)

// Deps carries everything the router needs. Redis and Metrics may be nil
// (tests run without them).
type Deps struct {
	DB        *gorm.DB                 // Database handle
	Redis     *redis.Client            // Optional read cache
	JWTSecret string                   // Token signing secret
	Metrics   *metrics.CheckoutMetrics // Optional checkout counters
}

// NewRouter builds the gin engine with all routes wired
func NewRouter(deps Deps) *gin.Engine {
	auth := service.NewAuthService(deps.DB, deps.JWTSecret)
	carts := service.NewCartService(deps.DB)
	catalog := service.NewCatalogService(deps.DB, deps.Redis)
	transactions := service.NewTransactionService(deps.DB, deps.Redis, deps.Metrics)
	users := service.NewUserService(deps.DB)

	r := gin.New()
	r.Use(gin.Recovery())

	authRequired := middleware.JWTAuthMiddleware(deps.JWTSecret) // Bearer-token gate
	adminOnly := middleware.AdminOnlyMiddleware()                // Role gate, applied after authRequired

	// Auth routes
	authGroup := r.Group("/auth")
	authGroup.POST("/register", api.RegisterHandler(auth)) // Registration endpoint
	authGroup.POST("/login", api.LoginHandler(auth))       // Login endpoint

	// Cart routes (protected by JWT)
	cartGroup := r.Group("/cart", authRequired)
	cartGroup.GET("", api.GetCartHandler(carts))                              // Get or create cart
	cartGroup.POST("/items", api.AddToCartHandler(carts))                     // Add item
	cartGroup.DELETE("/items/:id", api.RemoveFromCartHandler(carts))          // Remove item
	cartGroup.DELETE("/clear", api.ClearCartHandler(carts))                   // Clear cart
	cartGroup.DELETE("/:id", adminOnly, api.DeleteCartHandler(carts))         // Delete any cart (admin)

	// Transaction routes (protected by JWT)
	txGroup := r.Group("/transaction", authRequired)
	txGroup.POST("/checkout", api.CheckoutHandler(transactions))              // Atomic checkout
	txGroup.GET("", api.MyTransactionsHandler(transactions))                  // Own history
	txGroup.GET("/all", adminOnly, api.AllTransactionsHandler(transactions))  // All transactions (admin)

	// Catalog routes: reads are public, writes are admin-gated
	categoryGroup := r.Group("/category")
	categoryGroup.GET("", api.ListCategoriesHandler(catalog))
	categoryGroup.GET("/:id", api.GetCategoryHandler(catalog))
	categoryGroup.POST("", authRequired, adminOnly, api.CreateCategoryHandler(catalog))
	categoryGroup.PUT("/:id", authRequired, adminOnly, api.UpdateCategoryHandler(catalog))
	categoryGroup.DELETE("/:id", authRequired, adminOnly, api.DeleteCategoryHandler(catalog))

	listingGroup := r.Group("/gameaccount")
	listingGroup.GET("", api.ListGameAccountsHandler(catalog))
	listingGroup.GET("/:id", api.GetGameAccountHandler(catalog))
	listingGroup.GET("/category/:categoryId", api.ListGameAccountsByCategoryHandler(catalog))
	listingGroup.POST("", authRequired, adminOnly, api.CreateGameAccountHandler(catalog))
	listingGroup.PUT("/:id", authRequired, adminOnly, api.UpdateGameAccountHandler(catalog))
	listingGroup.DELETE("/:id", authRequired, adminOnly, api.DeleteGameAccountHandler(catalog))

	// User routes (protected by JWT)
	userGroup := r.Group("/user", authRequired)
	userGroup.GET("/profile", api.ProfileHandler(users))                        // Own profile
	userGroup.PUT("/balance/add", api.AddBalanceHandler(users))                 // Self top-up
	userGroup.POST("/add-balance", adminOnly, api.AdminAddBalanceHandler(users)) // Targeted top-up (admin)
	userGroup.GET("/all", adminOnly, api.ListUsersHandler(users))               // List users (admin)

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}
