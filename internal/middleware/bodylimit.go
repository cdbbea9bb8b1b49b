package middleware

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// UploadBodyLimit caps multipart requests carrying a resume or photo, file
// plus form fields.
const UploadBodyLimit = "6M"

// UploadLimit rejects oversized upload bodies with 413 before they are parsed.
func UploadLimit() echo.MiddlewareFunc {
	return echoMiddleware.BodyLimit(UploadBodyLimit)
}
