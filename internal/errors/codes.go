package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// Frontends map these codes to their own messages.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed request body
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // malformed identifier
	ValidationRequired     = "VALIDATION_REQUIRED"      // required field missing or empty

	// ==================== Reference catalogs (CATALOG_) ====================
	CatalogProductNotFound  = "CATALOG_PRODUCT_NOT_FOUND"  // unknown product reference
	CatalogMaterialNotFound = "CATALOG_MATERIAL_NOT_FOUND" // unknown material reference
	CatalogGradeNotFound    = "CATALOG_GRADE_NOT_FOUND"    // unknown grade reference

	// ==================== Combinations (COMBINATION_) ====================
	CombinationNotFound   = "COMBINATION_NOT_FOUND"    // unknown combination id
	CombinationEmptyBatch = "COMBINATION_EMPTY_BATCH"  // bulk update with no target ids

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound = "RESOURCE_NOT_FOUND" // generic missing resource

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // unexpected server failure
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // storage failure
)
