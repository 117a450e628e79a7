package errors

import "net/http"

var (
	ErrInvalidArgument = New(
		"INVALID_ARGUMENT",
		"Invalid argument",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidTimezone = New(
		"INVALID_TIMEZONE",
		"Unknown time zone",
		http.StatusBadRequest,
	)

	ErrBotActive = New(
		"BOT_ACTIVE",
		"El bot está activo. No se puede intervenir.",
		http.StatusForbidden,
	)

	ErrUnsupportedMediaType = New(
		"UNSUPPORTED_MEDIA_TYPE",
		"Tipo de archivo no permitido",
		http.StatusBadRequest,
	)

	ErrFileTooLarge = New(
		"FILE_TOO_LARGE",
		"Archivo demasiado grande (máx 30MB)",
		http.StatusBadRequest,
	)

	ErrNotFound = New(
		"NOT_FOUND",
		"Resource not found",
		http.StatusNotFound,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrExternalService = New(
		"EXTERNAL_SERVICE_ERROR",
		"External service request failed",
		http.StatusBadGateway,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
