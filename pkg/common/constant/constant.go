package constant

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// LegacyServiceName is the identifier reported by /health. The previous
// deployment of this service announced itself as "flask-app" and existing
// liveness probes match on it, so it stays the default.
const LegacyServiceName = "flask-app"

const (
	DefaultRedisHost = "localhost"
	DefaultRedisPort = 6379
)
