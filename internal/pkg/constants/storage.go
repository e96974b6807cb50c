package constants

// Blob store keys
const (
	KeyUsers    = "hopon-users"
	KeyTrips    = "hopon-trips"
	KeyMessages = "hopon-messages"
	KeySession  = "hopon-session:%s" // Format: hopon-session:{session_id}
)

// Redis hash fields backing a versioned blob
const (
	FieldData    = "data"
	FieldVersion = "version"
)

// Storage drivers
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)
