package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID   contextKey = "user_id"
	ContextKeyUsername contextKey = "username"
	ContextKeyUserRole contextKey = "user_role"
	ContextKeyTokenID  contextKey = "token_id"
	ContextKeyTokenExp contextKey = "token_exp"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	DashboardAdmin = "/v1/admin"
	DashboardUser  = "/v1/user"
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
)

const (
	RequestParamID     = "id"
	RequestParamLotID  = "lotID"
	RequestParamSpotID = "spotID"
	RequestMaxMemory   = 10 << 20 // 10 MB
)

const (
	DefaultValuePage  = 1
	DefaultValueLimit = 10
)

const (
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

const (
	DateFormat = time.RFC3339
)

const (
	MinutesToSeconds = 60
	SecondsPerHour   = 3600
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
)

const (
	ContentTypeJSON           = "application/json"
	ContentTypeFormURLEncoded = "application/x-www-form-urlencoded"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
	ResponseHealthy                   = "OK"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix = "*"
	Empty   = ""
)

// Cache prefixes shared by the lot, spot and reservation services.
const (
	CacheGetLot    = "lot:get"
	CacheGetAllLot = "lot:gets"
	CacheGetSpots  = "spot:gets"
)
