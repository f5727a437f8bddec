package router

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"coursehub/docs"
	"coursehub/internal/auth"
	"coursehub/internal/config"
	apperrors "coursehub/internal/errors"
	"coursehub/internal/handler"
	"coursehub/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	validator echo.Validator,
	jwtService *auth.JWTService,
	courseHandler *handler.CourseHandler,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = validator
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if cfg.IsDevelopment() {
		if cfg.SwaggerHost != "" {
			docs.SwaggerInfo.Host = cfg.SwaggerHost
		}
		e.GET("/docs/*", echoSwagger.WrapHandler)
	}

	// Public routes
	e.POST("/courses", courseHandler.CreateCourse)
	e.GET("/courses", courseHandler.ListCourses)
	e.GET("/courses/:id", courseHandler.GetCourse)
	e.POST("/sessions", authHandler.Login)

	// Attached per route: a group with an empty prefix would put every
	// unmatched path behind the token check.
	requireToken := auth.Middleware(jwtService)

	e.GET("/me", userHandler.Me, requireToken)
	e.POST("/courses/:id/enrollments", courseHandler.Enroll, requireToken, auth.RequireRole(model.RoleStudent))
}

// ErrorHandler renders every error as an errors.ErrorResponse. Server-side
// failures are logged with the request id and reach the client only as a
// generic message.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	var resp apperrors.ErrorResponse

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		switch m := he.Message.(type) {
		case apperrors.ErrorResponse:
			resp = m
		case string:
			resp = apperrors.ErrorResponse{Error: m, Code: apperrors.CodeForStatus(status)}
		default:
			resp = apperrors.ErrorResponse{Error: http.StatusText(status), Code: apperrors.CodeForStatus(status)}
		}
	}

	if status >= http.StatusInternalServerError {
		c.Logger().Errorf("request_id=%s %s %s: %v",
			c.Response().Header().Get(echo.HeaderXRequestID),
			c.Request().Method,
			c.Request().URL.Path,
			err,
		)
		resp = apperrors.ErrorResponse{Error: "internal server error", Code: apperrors.CodeInternal}
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, resp)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
