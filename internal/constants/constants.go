package constants

const (
	// AppName is used for the config directory and the CLI root command.
	AppName = "ecr-mirror"

	// Version is shown in the console sidebar footer.
	Version = "v1.0.0"

	// EnvPrefix prefixes every environment override (ECR_MIRROR_API_BASE_URL, ...).
	EnvPrefix = "ECR_MIRROR_"

	DefaultAPIBaseURL = "/api"
	DefaultAPIHost    = "http://localhost:8080"
)
