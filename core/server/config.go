package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// SwaggerEnabled controls whether the API documentation UI is served.
	SwaggerEnabled bool `mapstructure:"swagger_enabled" default:"true"`
}

// RequiresAuth reports whether API key authentication is enforced. An empty
// key means the deployment sits behind its own access control.
func (c Config) RequiresAuth() bool {
	return c.ApiKey != ""
}
