package config

// EnvPrefix is passed to envconfig; individual fields carry explicit
// SMARTLAUNDRY_* names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "SMARTLAUNDRY_DB_DSN"
	EnvDBHost = "SMARTLAUNDRY_DB_HOST"
	EnvDBUser = "SMARTLAUNDRY_DB_USER"
	EnvDBName = "SMARTLAUNDRY_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
