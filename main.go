package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/faeflux/faeflux-one/internal/agents"
	"github.com/faeflux/faeflux-one/internal/assets"
	"github.com/faeflux/faeflux-one/internal/audit"
	"github.com/faeflux/faeflux-one/internal/auth"
	"github.com/faeflux/faeflux-one/internal/common"
	"github.com/faeflux/faeflux-one/internal/config"
	"github.com/faeflux/faeflux-one/internal/handlers/api"
	"github.com/faeflux/faeflux-one/internal/middlewares"
	"github.com/faeflux/faeflux-one/internal/rbac"
	"github.com/faeflux/faeflux-one/internal/sites"
	"github.com/faeflux/faeflux-one/internal/tickets"
	"github.com/faeflux/faeflux-one/internal/users"
	"github.com/faeflux/faeflux-one/model"
	"github.com/faeflux/faeflux-one/params"
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/storage/memory/v2"
	redisstore "github.com/gofiber/storage/redis/v3"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

var (
	app       *cli.App
	gitCommit string
	gitDate   string
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML config file",
		Value: "config.yaml",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
	adminEmailFlag = &cli.StringFlag{
		Name:  "email",
		Usage: "Admin account email",
		Value: "admin@faeflux.local",
	}
	adminPasswordFlag = &cli.StringFlag{
		Name:  "password",
		Usage: "Admin account password (generated when omitted)",
	}
	adminNameFlag = &cli.StringFlag{
		Name:  "name",
		Usage: "Admin account full name",
		Value: "System Administrator",
	}
)

func init() {
	app = cli.NewApp()
	app.EnableBashCompletion = true
	app.Usage = "faeflux-one - IT operations and asset management API"
	app.Flags = []cli.Flag{
		configFileFlag,
		debugFlag,
	}
	app.Commands = []*cli.Command{
		{
			Name: "version",
			Action: func(ctx *cli.Context) error {
				fmt.Println(params.VersionWithCommit(gitCommit, gitDate))
				return nil
			},
		},
		{
			Name:   "create-admin",
			Usage:  "Create the initial admin user if it does not exist",
			Flags:  []cli.Flag{adminEmailFlag, adminPasswordFlag, adminNameFlag},
			Action: createAdmin,
		},
	}
	app.Action = run
}

func mustInitLogger(debug bool) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

func mustInitDatabase(dbConfig config.MySQLConfig) *gorm.DB {
	dsnCfg, err := mysqldrv.ParseDSN(dbConfig.Dsn)
	if err != nil {
		slog.Error("Invalid database DSN", "error", err)
		os.Exit(1)
	}

	db, err := gorm.Open(mysql.Open(dbConfig.Dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   dbConfig.TablePrefix,
			SingularTable: true,
		},
		TranslateError: true,
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if dbConfig.ReplicaDsn != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{mysql.Open(dbConfig.ReplicaDsn)},
		}))
		if err != nil {
			slog.Error("Failed to register read replica", "error", err)
			os.Exit(1)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Failed to access database pool", "error", err)
		os.Exit(1)
	}
	if dbConfig.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	}
	if dbConfig.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	}
	if dbConfig.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(dbConfig.ConnMaxIdleTime) * time.Second)
	}
	if dbConfig.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(dbConfig.ConnMaxLifetime) * time.Second)
	}

	if err := model.AutoMigrate(db); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Connected to database", "host", dsnCfg.Addr, "database", dsnCfg.DBName)
	return db
}

func newRateLimiter(storage fiber.Storage, max int, prefix string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		Storage:    storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return prefix + ":" + c.IP()
		},
	})
}

func setupAPIRoutes(
	router fiber.Router,
	cfg *config.Config,
	limiterStorage fiber.Storage,
	tokenService *auth.TokenService,
	authService *auth.AuthService,
	userService *users.UserService,
	agentService *agents.AgentService,
	assetService *assets.AssetService,
	ticketService *tickets.TicketService,
	siteService *sites.SiteService,
	recorder *audit.Recorder) {

	// handlers
	var (
		authHandler   = api.NewAuthHandler(authService, recorder)
		userHandler   = api.NewUserHandler(userService, recorder)
		agentHandler  = api.NewAgentHandler(agentService, recorder)
		assetHandler  = api.NewAssetHandler(assetService, recorder)
		ticketHandler = api.NewTicketHandler(ticketService, recorder)
		siteHandler   = api.NewSiteHandler(siteService, recorder)
		auditHandler  = api.NewAuditHandler(recorder)
	)

	var (
		requireAuth  = middlewares.RequireAuth(tokenService, userService)
		defaultLimit = newRateLimiter(limiterStorage, cfg.RateLimit.PerMinute, "rl")
	)

	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "faeflux-one-api",
			"version": params.Version,
		})
	})

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/login", defaultLimit, authHandler.PostLogin)
	authGroup.Post("/refresh", authHandler.PostRefresh)
	authGroup.Post("/logout", requireAuth, authHandler.PostLogout)
	authGroup.Get("/me", requireAuth, authHandler.GetMe)

	// Agent ingestion routes stay unauthenticated: fleet endpoints cannot
	// hold user credentials. Heartbeats are high-frequency and get a wider
	// budget than inventory submissions.
	agentGroup := v1.Group("/agents")
	agentGroup.Post("/heartbeat", newRateLimiter(limiterStorage, cfg.RateLimit.HeartbeatPerMinute, "hb"), agentHandler.PostHeartbeat)
	agentGroup.Post("/inventory", newRateLimiter(limiterStorage, cfg.RateLimit.InventoryPerMinute, "inv"), agentHandler.PostInventory)
	agentGroup.Get("", requireAuth, middlewares.RequirePermission(rbac.PermAgentView), agentHandler.GetAgents)
	agentGroup.Get("/:id", requireAuth, middlewares.RequirePermission(rbac.PermAgentView), agentHandler.GetAgent)
	agentGroup.Put("/:id", requireAuth, middlewares.RequirePermission(rbac.PermAgentManage), agentHandler.PutAgent)
	agentGroup.Delete("/:id", requireAuth, middlewares.RequirePermission(rbac.PermAgentManage), agentHandler.DeleteAgent)

	userGroup := v1.Group("/users", requireAuth)
	userGroup.Get("", middlewares.RequirePermission(rbac.PermUserView), userHandler.GetUsers)
	userGroup.Post("", defaultLimit, middlewares.RequirePermission(rbac.PermUserCreate), userHandler.PostUser)
	userGroup.Get("/:id", middlewares.RequirePermission(rbac.PermUserView), userHandler.GetUser)
	userGroup.Put("/:id", middlewares.RequirePermission(rbac.PermUserEdit), userHandler.PutUser)
	userGroup.Delete("/:id", middlewares.RequirePermission(rbac.PermUserDelete), userHandler.DeleteUser)

	assetGroup := v1.Group("/assets", requireAuth)
	assetGroup.Get("", middlewares.RequirePermission(rbac.PermAssetView), assetHandler.GetAssets)
	assetGroup.Post("", middlewares.RequirePermission(rbac.PermAssetCreate), assetHandler.PostAsset)
	assetGroup.Get("/:id", middlewares.RequirePermission(rbac.PermAssetView), assetHandler.GetAsset)
	assetGroup.Put("/:id", middlewares.RequirePermission(rbac.PermAssetEdit), assetHandler.PutAsset)
	assetGroup.Delete("/:id", middlewares.RequirePermission(rbac.PermAssetDelete), assetHandler.DeleteAsset)

	ticketGroup := v1.Group("/tickets", requireAuth)
	ticketGroup.Get("", middlewares.RequirePermission(rbac.PermTicketView), ticketHandler.GetTickets)
	ticketGroup.Post("", middlewares.RequirePermission(rbac.PermTicketCreate), ticketHandler.PostTicket)
	ticketGroup.Get("/:id", middlewares.RequirePermission(rbac.PermTicketView), ticketHandler.GetTicket)
	ticketGroup.Put("/:id", middlewares.RequirePermission(rbac.PermTicketEdit), ticketHandler.PutTicket)
	ticketGroup.Delete("/:id", middlewares.RequirePermission(rbac.PermTicketDelete), ticketHandler.DeleteTicket)

	siteGroup := v1.Group("/sites", requireAuth)
	siteGroup.Get("", middlewares.RequirePermission(rbac.PermSiteView), siteHandler.GetSites)
	siteGroup.Post("", middlewares.RequirePermission(rbac.PermSiteCreate), siteHandler.PostSite)
	siteGroup.Get("/:id", middlewares.RequirePermission(rbac.PermSiteView), siteHandler.GetSite)
	siteGroup.Put("/:id", middlewares.RequirePermission(rbac.PermSiteEdit), siteHandler.PutSite)
	siteGroup.Delete("/:id", middlewares.RequirePermission(rbac.PermSiteDelete), siteHandler.DeleteSite)

	v1.Get("/audit", requireAuth, middlewares.RequirePermission(rbac.PermAuditView), auditHandler.GetAuditLogs)
}

func run(ctx *cli.Context) error {
	cfg, err := config.LoadConfig(ctx.String(configFileFlag.Name))
	if err != nil {
		slog.Error("Could not load config file.", "error", err)
		return err
	}

	mustInitLogger(cfg.Debug || ctx.IsSet(debugFlag.Name))

	db := mustInitDatabase(cfg.MySQL)

	var (
		limiterStorage fiber.Storage
		redisStorage   *redisstore.Storage
	)
	if cfg.RateLimit.RedisURL != "" {
		redisStorage = redisstore.New(redisstore.Config{URL: cfg.RateLimit.RedisURL})
		limiterStorage = redisStorage
	} else {
		limiterStorage = memory.New()
	}

	// repositories
	var (
		userRepo   = users.NewUserRepository(db)
		agentRepo  = agents.NewAgentRepository(db)
		assetRepo  = assets.NewAssetRepository(db)
		ticketRepo = tickets.NewTicketRepository(db)
		siteRepo   = sites.NewSiteRepository(db)
		auditRepo  = audit.NewAuditLogRepository(db)
	)

	// services
	var (
		tokenService = auth.NewTokenService(
			cfg.JWT.PrivateKeyFile,
			cfg.JWT.PublicKeyFile,
			time.Duration(cfg.JWT.AccessTokenTTLMinutes)*time.Minute,
			time.Duration(cfg.JWT.RefreshTokenTTLDays)*24*time.Hour,
		)
		userService   = users.NewUserService(userRepo)
		authService   = auth.NewAuthService(userService, tokenService)
		agentService  = agents.NewAgentService(agentRepo)
		assetService  = assets.NewAssetService(assetRepo)
		ticketService = tickets.NewTicketService(ticketRepo)
		siteService   = sites.NewSiteService(siteRepo)
		recorder      = audit.NewRecorder(auditRepo)
	)

	router := fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		BodyLimit:     params.ServerBodyLimit,
		IdleTimeout:   params.ServerIdleTimeout,
		ReadTimeout:   params.ServerReadTimeout,
		WriteTimeout:  params.ServerWriteTimeout,
		ErrorHandler:  middlewares.ErrorHandler,
	})

	router.Use(recover.New())
	router.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	router.Use(logger.New())
	router.Use(helmet.New())
	router.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowOrigins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	router.Use(middlewares.ValidateHost(cfg.AllowedHosts, cfg.Environment))

	setupAPIRoutes(
		router,
		cfg,
		limiterStorage,
		tokenService,
		authService,
		userService,
		agentService,
		assetService,
		ticketService,
		siteService,
		recorder,
	)

	var rdbConn redis.UniversalClient
	if redisStorage != nil {
		rdbConn = redisStorage.Conn()
	}
	healthCheckCtx, term := context.WithCancel(ctx.Context)
	done := make(chan struct{})
	go common.StartHealthCheckServer(healthCheckCtx, done, rdbConn, db)
	defer func() {
		term()
		<-done
	}()
	return router.Listen(cfg.ListenAddr)
}

func createAdmin(ctx *cli.Context) error {
	cfg, err := config.LoadConfig(ctx.String(configFileFlag.Name))
	if err != nil {
		slog.Error("Could not load config file.", "error", err)
		return err
	}
	mustInitLogger(cfg.Debug || ctx.IsSet(debugFlag.Name))

	db := mustInitDatabase(cfg.MySQL)
	userService := users.NewUserService(users.NewUserRepository(db))

	email := ctx.String(adminEmailFlag.Name)
	if _, err := userService.GetUserByEmail(ctx.Context, email); err == nil {
		fmt.Println("Admin user already exists.")
		return nil
	} else if !errors.Is(err, users.ErrUserNotFound) {
		return err
	}

	password := ctx.String(adminPasswordFlag.Name)
	if password == "" {
		password, err = common.GenerateSecret(16)
		if err != nil {
			return err
		}
	}

	admin, err := userService.CreateUser(ctx.Context, users.CreateUserOptions{
		Email:    email,
		Password: password,
		FullName: ctx.String(adminNameFlag.Name),
		Role:     model.RoleAdmin,
	})
	if err != nil {
		return err
	}

	fmt.Println("Admin user created successfully!")
	fmt.Printf("Email: %s\n", admin.Email)
	fmt.Printf("Password: %s\n", password)
	fmt.Println("Change the password immediately after first login.")
	return nil
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
