package utils

import "time"

const (
	AppName = "TTMS"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8

	// Free-text field limits on workflow requests
	MaxDefectDetailsLength = 500
	MaxDiagnosisLength     = 500
	MaxNotesLength         = 1000

	// Attachment uploads
	MaxImageSize    = 5 * 1024 * 1024  // 5MB
	MaxDocumentSize = 10 * 1024 * 1024 // 10MB
	MaxUploadFiles  = 10
)

// Response envelope statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrInvalidToken       = "invalid token"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrValidationFailed   = "validation failed"
)

// Cache key prefixes, shared so invalidation stays in sync with reads
const (
	CacheCarPrefix         = "car_plate_"
	CacheMaintenancePrefix = "maintenance_request:"
	CacheGeocodePrefix     = "geocode:"
)

// Attachment types accepted by ValidateUpload
var (
	AllowedImageTypes    = []string{"jpg", "jpeg", "png", "gif", "webp"}
	AllowedDocumentTypes = []string{"pdf", "doc", "docx", "txt"}
)
