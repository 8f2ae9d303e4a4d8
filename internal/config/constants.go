package config

import "time"

const (
	AppName    = "lingo-admin-console"
	AppVersion = "1.4.0"
)

const (
	DefaultServerPort     = ":8080"
	DefaultLogLevel       = "info"
	DefaultDatabaseDriver = "postgres"
	DefaultMailerType     = "log"
	DefaultAccessTokenTTL = 12 * time.Hour
	DefaultUserListTTL    = 5 * time.Minute
)

// Batching. The backend rejects batches above MaxBatchLimit operations.
const (
	MaxBatchLimit        = 500
	DefaultBatchLimit    = 500
	DefaultBatchHeadroom = 450
	DefaultPageSize      = 500
	DefaultConcurrency   = 8
)
