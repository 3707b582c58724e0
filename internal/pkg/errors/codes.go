package errors

import "net/http"

var (
	ErrInvalidBounds = New(
		"INVALID_BOUNDS",
		"Invalid viewport bounds: require north > south, east > west within valid coordinate ranges",
		http.StatusBadRequest,
	)

	ErrInvalidZoom = New(
		"INVALID_ZOOM",
		"Invalid zoom level: must be between 1 and 20",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrRepositoryUnavailable = New(
		"REPOSITORY_UNAVAILABLE",
		"Place data source is unavailable",
		http.StatusServiceUnavailable,
	)

	ErrClusteringTimeout = New(
		"CLUSTERING_TIMEOUT",
		"Clustering timed out: reduce the viewport area or zoom in",
		http.StatusGatewayTimeout,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
