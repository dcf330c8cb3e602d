package constants

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer ContextKey = "bearer"
	AuthorizationPayloadKey ContextKey = "authorization_payload"
	IdentityKey             ContextKey = "identity"
	AuthorizationIPKey      ContextKey = "ip_address"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "dev"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)

type RequestID string

const (
	RequestIDKey    RequestID = "request_id"
	RequestIDHeader           = "X-Request-ID"
)
