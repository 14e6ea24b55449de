package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"haramaya.com/pharmatrack/internal/config"
	"haramaya.com/pharmatrack/internal/entity"
	"haramaya.com/pharmatrack/internal/handler"
	"haramaya.com/pharmatrack/internal/middleware"
	"haramaya.com/pharmatrack/internal/repository"
	"haramaya.com/pharmatrack/internal/service"
	"haramaya.com/pharmatrack/pkg/token"
)

type Server struct {
	engine *gin.Engine
	cfg    *config.Config
}

func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, meili meilisearch.ServiceManager) *Server {
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	typeRepo := repository.NewTypeRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	medicineRepo := repository.NewMedicineRepository(db)

	var searchSvc service.SearchService
	if meili != nil {
		searchSvc = service.NewSearchService(meili)
	}

	authHandler := handler.NewAuthHandler(service.NewAuthService(userRepo, issuer, rdb, cfg))
	userHandler := handler.NewUserHandler(service.NewUserService(userRepo))
	roleHandler := handler.NewRoleHandler(service.NewRoleService(roleRepo))
	categoryHandler := handler.NewCategoryHandler(service.NewCategoryService(categoryRepo))
	typeHandler := handler.NewTypeHandler(service.NewTypeService(typeRepo))
	supplierHandler := handler.NewSupplierHandler(service.NewSupplierService(supplierRepo))
	medicineHandler := handler.NewMedicineHandler(
		service.NewMedicineService(medicineRepo, categoryRepo, typeRepo, searchSvc))

	authMiddleware := middleware.NewAuthMiddleware(userRepo, issuer)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	setupCORS(router, cfg)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.POST("/auth/logout", authHandler.Logout)

		protected.GET("/roles", roleHandler.GetAllRoles)

		users := protected.Group("/users")
		users.Use(authMiddleware.RequireRoles(entity.RoleSystemAdministrator))
		{
			users.GET("", userHandler.GetAllUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		manage := authMiddleware.RequireRoles(entity.RoleSystemAdministrator, entity.RolePharmacist)

		medicines := protected.Group("/medicines")
		{
			medicines.GET("", medicineHandler.GetAllMedicines)
			medicines.GET("/search", medicineHandler.SearchMedicines)
			medicines.GET("/low-stock", medicineHandler.GetLowStockMedicines)
			medicines.GET("/:id", medicineHandler.GetMedicine)
			medicines.POST("", manage, medicineHandler.CreateMedicine)
			medicines.PUT("/:id", manage, medicineHandler.UpdateMedicine)
			medicines.DELETE("/:id", manage, medicineHandler.DeleteMedicine)
		}

		categories := protected.Group("/medicine-categories")
		{
			categories.GET("", categoryHandler.GetAllCategories)
			categories.GET("/:id", categoryHandler.GetCategory)
			categories.POST("", manage, categoryHandler.CreateCategory)
			categories.PUT("/:id", manage, categoryHandler.UpdateCategory)
			categories.DELETE("/:id", manage, categoryHandler.DeleteCategory)
		}

		types := protected.Group("/medicine-types")
		{
			types.GET("", typeHandler.GetAllTypes)
			types.GET("/:id", typeHandler.GetType)
			types.POST("", manage, typeHandler.CreateType)
			types.PUT("/:id", manage, typeHandler.UpdateType)
			types.DELETE("/:id", manage, typeHandler.DeleteType)
		}

		suppliers := protected.Group("/suppliers")
		{
			suppliers.GET("", supplierHandler.GetAllSuppliers)
			suppliers.GET("/:id", supplierHandler.GetSupplier)
			suppliers.POST("", manage, supplierHandler.CreateSupplier)
			suppliers.PUT("/:id", manage, supplierHandler.UpdateSupplier)
			suppliers.DELETE("/:id", manage, supplierHandler.DeleteSupplier)
		}
	}

	return &Server{
		engine: router,
		cfg:    cfg,
	}
}

func (s *Server) Run() error {
	return s.engine.Run(":" + s.cfg.Port)
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	origins := []string{"http://localhost:3000"}
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
