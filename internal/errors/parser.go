package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError translates storage-layer errors into a code and a message safe to
// return to callers. Raw driver detail stays in the server logs only.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// GORM sentinel errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    notFoundCode(context),
			Message: notFoundMessage(context),
		}
	}

	// PostgreSQL constraint violations

	// foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStrLower)
	}

	// not-null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// Connectivity failures
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Storage is temporarily unavailable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: defaultErrorMessage(context),
	}
}

func parseForeignKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "product_id") {
		return ErrorInfo{Code: CatalogProductNotFound, Message: "Referenced product does not exist"}
	}
	if strings.Contains(errLower, "material_id") {
		return ErrorInfo{Code: CatalogMaterialNotFound, Message: "Referenced material does not exist"}
	}
	if strings.Contains(errLower, "grade_id") {
		return ErrorInfo{Code: CatalogGradeNotFound, Message: "Referenced grade does not exist"}
	}
	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "Referenced data does not exist",
	}
}

func notFoundCode(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "combination"):
		return CombinationNotFound
	case strings.Contains(contextLower, "product"):
		return CatalogProductNotFound
	case strings.Contains(contextLower, "material"):
		return CatalogMaterialNotFound
	case strings.Contains(contextLower, "grade"):
		return CatalogGradeNotFound
	}
	return ResourceNotFound
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "combination"):
		return "Product combination not found"
	case strings.Contains(contextLower, "product"):
		return "Product not found"
	case strings.Contains(contextLower, "material"):
		return "Material not found"
	case strings.Contains(contextLower, "grade"):
		return "Grade not found"
	}
	return "Requested data not found"
}

// ParseAndRespond parses err and writes the resulting code and message as the
// response body.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}

func defaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") {
		return "Creation failed. Please try again later"
	}
	if strings.Contains(contextLower, "update") {
		return "Update failed. Please try again later"
	}
	if strings.Contains(contextLower, "count") || strings.Contains(contextLower, "list") {
		return "Lookup failed. Please try again later"
	}
	return "An internal error occurred. Please try again later"
}
