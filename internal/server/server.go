// Package server wires repositories, services and handlers into a fiber app.
package server

import (
	"go-inventory-pos/internal/config"
	"go-inventory-pos/internal/finance"
	"go-inventory-pos/internal/handler"
	"go-inventory-pos/internal/middleware"
	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/internal/service"
	"go-inventory-pos/internal/ws"
	"go-inventory-pos/pkg/jwt"
	"go-inventory-pos/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

type Options struct {
	Config config.Config
	DB     *gorm.DB
	Schema finance.Schema
	Hub    *ws.Hub
	Tokens *jwt.Manager
	// Quiet drops the request logger, for tests.
	Quiet bool
}

// New builds the application with every route registered.
func New(opts Options) *fiber.App {
	cfg, db, hub := opts.Config, opts.DB, opts.Hub

	// Repositories
	itemRepo := repository.NewItemRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	deliveryRepo := repository.NewDeliveryRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	vendorRepo := repository.NewVendorRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	dashRepo := repository.NewDashboardRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)

	// Services
	ledger := service.NewInventoryLedger(itemRepo)
	dashService := service.NewDashboardService(dashRepo, userRepo, opts.Schema, cfg.LowStockThreshold, cfg.Currency)
	purchaseService := service.NewPurchaseService(purchaseRepo, vendorRepo, ledger, db, hub)
	itemService := service.NewItemService(service.ItemServiceDeps{
		Items:      itemRepo,
		Purchases:  purchaseRepo,
		Categories: categoryRepo,
		Vendors:    vendorRepo,
		Dashboard:  dashService,
		Ledger:     ledger,
		DB:         db,
		Hub:        hub,
		UploadDir:  cfg.UploadDir,
		MaxImage:   cfg.MaxImageBytes,
	})
	saleService := service.NewSaleService(saleRepo, itemRepo, customerRepo)
	deliveryService := service.NewDeliveryService(deliveryRepo, itemRepo)
	catalogService := service.NewCatalogService(categoryRepo, vendorRepo, customerRepo)
	authService := service.NewAuthService(userRepo, opts.Tokens)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)

	// Handlers
	itemHandler := handler.NewItemHandler(itemService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	saleHandler := handler.NewSaleHandler(saleService)
	deliveryHandler := handler.NewDeliveryHandler(deliveryService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(userService)

	app := fiber.New(fiber.Config{
		AppName:   cfg.AppName,
		BodyLimit: int(cfg.MaxImageBytes) + 1024*1024,
	})

	if !opts.Quiet {
		app.Use(fiberlogger.New())
	}
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.AllowedOrigin}))

	app.Static("/uploads", cfg.UploadDir)

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	requireAuth := middleware.RequireAuth(userRepo, opts.Tokens)
	protected := api.Group("", requireAuth)
	can := middleware.RequirePrivilege

	protected.Get("/dashboard", dashHandler.GetDashboard)

	protected.Get("/items", itemHandler.GetItems)
	protected.Get("/items/search", itemHandler.SearchItems)
	protected.Get("/items/select", itemHandler.SelectItems)
	protected.Get("/items/:id", itemHandler.GetItem)
	protected.Post("/items", can(model.PrivItemCreate), itemHandler.CreateItem)
	protected.Put("/items/:id", can(model.PrivItemUpdate), itemHandler.UpdateItem)
	protected.Delete("/items/:id", can(model.PrivItemDelete), itemHandler.DeleteItem)
	protected.Post("/items/:id/image", can(model.PrivItemUpdate), itemHandler.UploadImage)

	protected.Get("/purchases", purchaseHandler.GetPurchases)
	protected.Get("/purchases/:id", purchaseHandler.GetPurchase)
	protected.Post("/purchases", can(model.PrivPurchaseCreate), purchaseHandler.CreatePurchase)
	protected.Put("/purchases/:id", can(model.PrivPurchaseUpdate), purchaseHandler.UpdatePurchase)
	protected.Put("/purchases/:id/delivered", middleware.RequireAnyPrivilege(model.PrivPurchaseUpdate, model.PrivDeliveryUpdate), purchaseHandler.MarkDelivered)
	protected.Delete("/purchases/:id", can(model.PrivPurchaseDelete), purchaseHandler.DeletePurchase)

	protected.Get("/sales", saleHandler.GetSales)
	protected.Get("/sales/:id", saleHandler.GetSale)
	protected.Post("/sales", can(model.PrivSaleCreate), saleHandler.CreateSale)
	protected.Delete("/sales/:id", can(model.PrivSaleDelete), saleHandler.DeleteSale)

	protected.Get("/deliveries", deliveryHandler.GetDeliveries)
	protected.Get("/deliveries/search", deliveryHandler.SearchDeliveries)
	protected.Get("/deliveries/:id", deliveryHandler.GetDelivery)
	protected.Post("/deliveries", can(model.PrivDeliveryCreate), deliveryHandler.CreateDelivery)
	protected.Put("/deliveries/:id", can(model.PrivDeliveryUpdate), deliveryHandler.UpdateDelivery)
	protected.Delete("/deliveries/:id", can(model.PrivDeliveryDelete), deliveryHandler.DeleteDelivery)

	protected.Get("/categories", catalogHandler.GetCategories)
	protected.Get("/categories/:id", catalogHandler.GetCategory)
	protected.Post("/categories", can(model.PrivCatalogManage), catalogHandler.CreateCategory)
	protected.Put("/categories/:id", can(model.PrivCatalogManage), catalogHandler.UpdateCategory)
	protected.Delete("/categories/:id", can(model.PrivCatalogManage), catalogHandler.DeleteCategory)

	protected.Get("/vendors", catalogHandler.GetVendors)
	protected.Get("/vendors/:id", catalogHandler.GetVendor)
	protected.Post("/vendors", can(model.PrivCatalogManage), catalogHandler.CreateVendor)
	protected.Put("/vendors/:id", can(model.PrivCatalogManage), catalogHandler.UpdateVendor)
	protected.Delete("/vendors/:id", can(model.PrivCatalogManage), catalogHandler.DeleteVendor)

	protected.Get("/customers", catalogHandler.GetCustomers)
	protected.Get("/customers/:id", catalogHandler.GetCustomer)
	protected.Post("/customers", can(model.PrivCatalogManage), catalogHandler.CreateCustomer)
	protected.Put("/customers/:id", can(model.PrivCatalogManage), catalogHandler.UpdateCustomer)
	protected.Delete("/customers/:id", can(model.PrivCatalogManage), catalogHandler.DeleteCustomer)

	protected.Get("/users/me", userHandler.Me)
	protected.Get("/users", can(model.PrivUserView), userHandler.GetUsers)
	protected.Get("/users/:id", can(model.PrivUserView), userHandler.GetUser)
	protected.Post("/users", can(model.PrivUserCreate), userHandler.CreateUser)
	protected.Put("/users/:id", can(model.PrivUserCreate), userHandler.UpdateUser)
	protected.Get("/roles", can(model.PrivUserView), roleHandler.GetRoles)
	protected.Put("/users/:id/privileges", can(model.PrivUserCreate), userHandler.UpdatePrivileges)
	protected.Get("/privileges", can(model.PrivUserView), roleHandler.GetPrivileges)

	// Stock events
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	}, requireAuth)
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.Register <- c
		defer func() { hub.Unregister <- c }()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	logger.GetLogger().WithField("payment_field", opts.Schema.PaymentField).
		WithField("cost_field", opts.Schema.CostField).
		WithField("paid_rule", opts.Schema.PaidRule).
		Info("finance schema resolved")

	return app
}
