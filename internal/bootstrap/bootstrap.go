package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/yigit/eventsphere/internal/app/auth"
	appControllers "github.com/yigit/eventsphere/internal/app/controllers"
	appGraphQL "github.com/yigit/eventsphere/internal/app/graphql"
	appMigrations "github.com/yigit/eventsphere/internal/app/migrations"
	appRepos "github.com/yigit/eventsphere/internal/app/repositories"
	appRoutes "github.com/yigit/eventsphere/internal/app/routes"
	appServices "github.com/yigit/eventsphere/internal/app/services"
	"github.com/yigit/eventsphere/internal/config"
	"github.com/yigit/eventsphere/internal/db"
	appMiddleware "github.com/yigit/eventsphere/internal/middleware"
	pkgAuth "github.com/yigit/eventsphere/internal/pkg/auth"
	"github.com/yigit/eventsphere/internal/pkg/helpers"
	"github.com/yigit/eventsphere/internal/pkg/logger"
	"github.com/yigit/eventsphere/internal/pkg/validation"
	"github.com/yigit/eventsphere/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService     *appServices.AuthService
	EventService    appServices.EventService
	AttendeeService appServices.AttendeeService
	TeacherService  appServices.TeacherService
	SubjectService  appServices.SubjectService
	Controllers     appRoutes.Controllers
	AuthMiddleware  *appMiddleware.AuthMiddleware
	Repos           *appRepos.Repositories
	JWTService      *pkgAuth.JWTService
	AuthzService    *appAuth.AuthorizationService
	Logger          zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.ConfigFromSettings(cfg.Logging.Level, cfg.Logging.Format))

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(cfg.GetPostgresConnectionString(), logger.WithComponent("migrations"))
	if err := migrator.Up(); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if cfg.Database.SeedData {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := seed.CreateDefaultData(ctx, dbPool, lgr); err != nil {
			// Not fatal: the API works without default subjects
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, conn db.DBTX, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(conn)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.EventRepository)

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, logger.WithComponent("auth"))
	deps.EventService = appServices.NewEventService(
		deps.Repos.EventRepository,
		deps.Repos.AttendeeRepository,
		deps.AuthzService,
		logger.WithComponent("events"),
	)
	deps.AttendeeService = appServices.NewAttendeeService(
		deps.Repos.EventRepository,
		deps.Repos.AttendeeRepository,
		logger.WithComponent("attendees"),
	)
	deps.TeacherService = appServices.NewTeacherService(deps.Repos.TeacherRepository, logger.WithComponent("teachers"))
	deps.SubjectService = appServices.NewSubjectService(
		deps.Repos.SubjectRepository,
		deps.Repos.TeacherRepository,
		logger.WithComponent("subjects"),
	)

	schema, err := appGraphQL.NewSchema(appGraphQL.NewResolver(
		deps.TeacherService,
		deps.SubjectService,
		deps.AuthService,
		logger.WithComponent("graphql"),
	))
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to build GraphQL schema")
		return nil, fmt.Errorf("failed to build graphql schema: %w", err)
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(deps.AuthService, lgr),
		User:       appControllers.NewUserController(deps.AuthService, lgr),
		Event:      appControllers.NewEventController(deps.EventService),
		Attendance: appControllers.NewAttendanceController(deps.AttendeeService, deps.EventService),
		School:     appControllers.NewSchoolController(deps.SubjectService),
		GraphQL:    appGraphQL.NewHandler(schema),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := validation.RegisterGinRules(); err != nil {
		lgr.Error().Err(err).Msg("Failed to register validation rules")
		return nil, fmt.Errorf("failed to register validation rules: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(logger.WithComponent("http")))
	router.Use(appMiddleware.CORS(cfg.GetAllowedOrigins()))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router, nil
}
