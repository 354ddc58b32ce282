package dummyapi

// Config holds configuration for the upstream JSON API.
type Config struct {
	// BaseURL is the API root, e.g. https://dummyjson.com.
	BaseURL string `mapstructure:"base_url" default:"https://dummyjson.com"`
	// TimeoutSeconds bounds a single request. Zero leaves it unbounded.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
