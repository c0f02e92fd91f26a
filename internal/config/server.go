package config

import "strings"

// ServerConfig holds the web explorer settings.
type ServerConfig struct {
	Addr      string          `yaml:"addr"`
	StaticDir string          `yaml:"static_dir"`
	WebSocket WebSocketConfig `yaml:"websocket"`
}

// WebSocketConfig holds WebSocket-specific settings.
type WebSocketConfig struct {
	// AllowedOrigins is a list of origins allowed to connect via WebSocket.
	// Empty list enforces same-origin policy. "*" allows all origins.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the maximum WebSocket message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`
}

// DefaultServerConfig returns the web explorer defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:      "127.0.0.1:8080",
		StaticDir: "web/static",
		WebSocket: WebSocketConfig{
			AllowedOrigins: []string{},
			MaxMessageSize: 4096,
		},
	}
}

// IsOriginAllowed checks if the given origin may open a websocket:
// a "*" entry allows everything, an exact entry allows that origin, and an
// empty list falls back to same-origin against the request host.
func (c *WebSocketConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}

	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// isSameOrigin checks if the origin matches the request host.
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // No origin header means a non-browser client.
	}

	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")

	return originHost == requestHost
}
