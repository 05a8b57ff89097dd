package config

import (
	"encoding/json"
	"os"

	"github.com/kri-sh27/s3transcribe/internal/flagx"
	"github.com/kri-sh27/s3transcribe/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "30s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP        string         `json:"endpoint_addr_http"`
	DatabaseDSN             string         `json:"database_dsn"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	S3AccessKeyID           string         `json:"s3_access_key_id"`
	S3SecretAccessKey       string         `json:"s3_secret_access_key"`
	S3Bucket                string         `json:"s3_bucket"`
	S3Region                string         `json:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint"`
	OpenAIAPIKey            string         `json:"openai_api_key"`
	TranscriptionModel      string         `json:"transcription_model"`
	TranslationModel        string         `json:"translation_model"`
	DownloadTimeout         timex.Duration `json:"download_timeout"`
	TranscribeTimeout       timex.Duration `json:"transcribe_timeout"`
	TranslateTimeout        timex.Duration `json:"translate_timeout"`
	TempDir                 string         `json:"temp_dir"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; when neither is set, no JSON file is loaded. If the file cannot
// be read or contains invalid JSON, the function panics.
//
// The caller is expected to merge these values with defaults and
// command-line flags as part of the full configuration process.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.SessionValidityDuration = c.SessionValidityDuration.Duration
	config.S3AccessKeyID = c.S3AccessKeyID
	config.S3SecretAccessKey = c.S3SecretAccessKey
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.OpenAIAPIKey = c.OpenAIAPIKey
	config.TranscriptionModel = c.TranscriptionModel
	config.TranslationModel = c.TranslationModel
	config.DownloadTimeout = c.DownloadTimeout.Duration
	config.TranscribeTimeout = c.TranscribeTimeout.Duration
	config.TranslateTimeout = c.TranslateTimeout.Duration
	config.TempDir = c.TempDir
}
