package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":3000", cfg.EndpointAddr)
	assert.Equal(t, 24*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, ImageBackendDisk, cfg.ImageBackend)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.NotEmpty(t, cfg.SecretKey)
}

func TestParseEnv_Overlays(t *testing.T) {
	t.Setenv("ADDRESS", ":8081")
	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("TOKEN_VALIDITY", "48h")
	t.Setenv("IMAGE_BACKEND", ImageBackendS3)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":8081", cfg.EndpointAddr)
	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, 48*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, ImageBackendS3, cfg.ImageBackend)
	// untouched fields keep their defaults
	assert.Equal(t, "images", cfg.ImageDir)
}

func TestParseEnv_IgnoresBadDuration(t *testing.T) {
	t.Setenv("TOKEN_VALIDITY", "soon")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 24*time.Hour, cfg.TokenValidityDuration)
}

func TestJsonConfig_Unmarshal(t *testing.T) {
	data := []byte(`{
		"endpoint_addr": ":9090",
		"secret_key": "json-secret",
		"token_validity_duration": "12h",
		"s3_bucket": "override"
	}`)

	c := &JsonConfig{}
	require.NoError(t, json.Unmarshal(data, c))

	assert.Equal(t, ":9090", c.EndpointAddr)
	assert.Equal(t, "json-secret", c.SecretKey)
	require.NotNil(t, c.TokenValidityDuration)
	assert.Equal(t, 12*time.Hour, c.TokenValidityDuration.Duration)
	assert.Equal(t, "override", c.S3Bucket)
	assert.Empty(t, c.DatabaseDSN)
}

func TestParseJson_AppliesFileFromFlag(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.WriteString(`{"endpoint_addr": ":7070", "token_validity_duration": "1h"}`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"server", "-c", f.Name()}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddr)
	assert.Equal(t, time.Hour, cfg.TokenValidityDuration)
	// fields absent from the file keep their defaults
	assert.Equal(t, "images", cfg.ImageDir)
}

func TestParseFlags_Overlays(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"server", "-a", ":6060", "-t", "72", "-i", ImageBackendS3}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":6060", cfg.EndpointAddr)
	assert.Equal(t, 72*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, ImageBackendS3, cfg.ImageBackend)
}
