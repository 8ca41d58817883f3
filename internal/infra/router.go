package infra

import (
	stderrors "errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/lunchly/internal/cache"
	"github.com/umalmyha/lunchly/internal/handlers"
	"github.com/umalmyha/lunchly/internal/middleware"
	"github.com/umalmyha/lunchly/internal/repository"
	"github.com/umalmyha/lunchly/internal/service"
	"github.com/umalmyha/lunchly/internal/validation"
)

func Router(pgPool *pgxpool.Pool, redisClient *redis.Client, logger *logrus.Logger) (*echo.Echo, error) {
	e := echo.New()

	enLocale := en.New()
	translator, ok := ut.New(enLocale, enLocale).GetTranslator("en")
	if !ok {
		return nil, stderrors.New("failed to build validator because of missing en translations")
	}
	e.Validator = validation.Echo(validator.New(), translator)

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var sc interface{ Status() int }
		if stderrors.As(err, &sc) {
			err = echo.NewHTTPError(sc.Status(), err.Error())
		}
		e.DefaultHTTPErrorHandler(err, c)
	}

	e.Use(middleware.RequestLogging(logger))

	// Repositories
	customerRepo := repository.NewPostgresCustomerRepository(pgPool)
	reservationRepo := repository.NewPostgresReservationRepository(pgPool)

	// Cache
	customerCache := cache.NewRedisCustomerCache(redisClient)

	// Services
	customerSvc := service.NewCustomerService(customerRepo, reservationRepo, customerCache)
	reservationSvc := service.NewReservationService(reservationRepo)

	// Handlers
	customerHandler := handlers.NewCustomerHTTPHandler(customerSvc)
	reservationHandler := handlers.NewReservationHTTPHandler(reservationSvc)

	// API routes
	api := e.Group("/api")

	customersAPI := api.Group("/customers")
	customersAPI.GET("", customerHandler.GetAll)
	customersAPI.GET("/top", customerHandler.GetBest)
	customersAPI.GET("/:id", customerHandler.Get)
	customersAPI.GET("/:id/reservations", customerHandler.GetReservations)
	customersAPI.POST("", customerHandler.Post)
	customersAPI.PUT("/:id", customerHandler.Put)

	reservationsAPI := api.Group("/reservations")
	reservationsAPI.POST("", reservationHandler.Post)
	reservationsAPI.PUT("/:id", reservationHandler.Put)

	return e, nil
}
