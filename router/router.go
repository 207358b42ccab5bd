package router

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ju699/FlexFood/controllers"
	"github.com/ju699/FlexFood/middlewares"
	"github.com/ju699/FlexFood/services"
)

func SetupRouter(db *gorm.DB, gateway *services.StorageGateway, cache *services.MenuCache) *gin.Engine {
	r := gin.Default()

	// Uploaded images are served straight from disk; only image files may be
	// fetched from the uploads tree.
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "public/uploads"
	}
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			lower := strings.ToLower(c.Request.URL.Path)
			if !strings.HasSuffix(lower, ".jpg") &&
				!strings.HasSuffix(lower, ".jpeg") &&
				!strings.HasSuffix(lower, ".png") &&
				!strings.HasSuffix(lower, ".webp") {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}
		c.Next()
	})
	r.Static("/uploads", uploadDir)

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	ownerCtrl := controllers.NewOwnerController(db)
	restaurantCtrl := controllers.NewRestaurantController(db, gateway, cache)
	categoryCtrl := controllers.NewCategoryController(db)
	productCtrl := controllers.NewProductController(db, gateway, cache)
	orderCtrl := controllers.NewOrderController(db)
	statsCtrl := controllers.NewStatsController(db)
	publicCtrl := controllers.NewPublicController(db, cache)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", ownerCtrl.Register)
		public.POST("/login", ownerCtrl.Login)
	}

	// Customer menu reached by QR code (no auth)
	r.GET("/r/:slug", publicCtrl.GetMenu)
	r.GET("/r/:slug/p/:product_id", publicCtrl.GetProduct)
	r.POST("/r/:slug/orders", publicCtrl.CreateOrder)

	// ----------------------------------------------------------------
	//                      OWNER DASHBOARD ROUTES
	// ----------------------------------------------------------------
	dashboard := r.Group("/dashboard")
	dashboard.Use(middlewares.AuthMiddleware())

	dashboard.GET("/profile", ownerCtrl.GetProfile)

	// RESTAURANT
	dashboard.POST("/restaurant", restaurantCtrl.CreateRestaurant)
	dashboard.GET("/restaurant", restaurantCtrl.GetMyRestaurant)
	dashboard.PATCH("/restaurant", restaurantCtrl.UpdateRestaurant)
	dashboard.GET("/restaurant/qr", restaurantCtrl.GetQRCode)

	// CATEGORIES
	dashboard.GET("/categories", categoryCtrl.GetAllCategories)
	dashboard.POST("/categories", categoryCtrl.CreateCategory)
	dashboard.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
	dashboard.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

	// PRODUCTS
	dashboard.GET("/products", productCtrl.GetAllProducts)
	dashboard.POST("/products", productCtrl.CreateProduct)
	dashboard.GET("/products/:product_id", productCtrl.GetProductByID)
	dashboard.PATCH("/products/:product_id", productCtrl.UpdateProduct)
	dashboard.POST("/products/:product_id/toggle", productCtrl.ToggleAvailability)
	dashboard.DELETE("/products/:product_id", productCtrl.DeleteProduct)

	// ORDERS BOARD
	dashboard.GET("/orders", orderCtrl.GetAllOrders)
	dashboard.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	dashboard.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	dashboard.POST("/orders/:order_id/advance", orderCtrl.AdvanceOrder)

	// STATISTICS
	dashboard.GET("/stats", statsCtrl.GetDashboardStats)
	dashboard.GET("/stats/chart", statsCtrl.GetStatsChart)

	return r
}
