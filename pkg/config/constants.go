package config

const (
	// EnvPrefix scopes every environment variable the app reads.
	EnvPrefix = "ATLASTOURS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)
