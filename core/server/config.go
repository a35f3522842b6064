package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"3000"`
	// BodyLimitMB is the maximum accepted request body in megabytes.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"50"`
	// CORSOrigins is a comma separated list of allowed origins.
	CORSOrigins string `mapstructure:"cors_origins" default:"*"`
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 50 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}

// AllowOrigins returns the CORS origins in the form the fiber cors middleware expects.
func (c Config) AllowOrigins() string {
	parts := strings.Split(c.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ",")
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
