package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// TimeoutConfig bounds the request context of every route
func TimeoutConfig(timeout time.Duration) echo.MiddlewareFunc {
	return middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: timeout,
	})
}

// slowSuffixes are the resume routes that wait on the generation endpoint or the TeX toolchain
var slowSuffixes = []string{
	"/resume/build",
	"/resume/ats-scan",
	"/resume/pdf",
	"/resume/export",
	"/jobs/import",
}

// SelectiveTimeoutConfig applies the long timeout to generation, compile and
// import routes and the default timeout to everything else
func SelectiveTimeoutConfig(defaultTimeout, longTimeout time.Duration) echo.MiddlewareFunc {
	short := middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Skipper: IsSlowRoute,
		Timeout: defaultTimeout,
	})
	long := middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Skipper: func(c echo.Context) bool { return !IsSlowRoute(c) },
		Timeout: longTimeout,
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return short(long(next))
	}
}

func IsSlowRoute(c echo.Context) bool {
	path := c.Request().URL.Path
	for _, suffix := range slowSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}
