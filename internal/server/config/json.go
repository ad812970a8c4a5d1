package config

import (
	"encoding/json"
	"os"

	"github.com/mbertrand/piquante/internal/flagx"
	"github.com/mbertrand/piquante/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. Duration fields use
// timex.Duration so they accept both "24h" strings and integer nanoseconds.
// After unmarshalling, set fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr          string          `json:"endpoint_addr"`
	DatabaseDSN           string          `json:"database_dsn"`
	SecretKey             string          `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	ImageBackend          string          `json:"image_backend"`
	ImageDir              string          `json:"image_dir"`
	PublicBaseURL         string          `json:"public_base_url"`
	S3RootUser            string          `json:"s3_root_user"`
	S3RootPassword        string          `json:"s3_root_password"`
	S3Bucket              string          `json:"s3_bucket"`
	S3Region              string          `json:"s3_region"`
	S3BaseEndpoint        string          `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config. The file path comes from the -c/-config flags; when absent, no
// file is loaded. Unset fields leave the current value untouched. Unreadable
// or invalid files panic: a config file that exists but cannot be applied is
// a startup error, not something to run past.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	setString(&config.EndpointAddr, c.EndpointAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.ImageBackend, c.ImageBackend)
	setString(&config.ImageDir, c.ImageDir)
	setString(&config.PublicBaseURL, c.PublicBaseURL)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
}
