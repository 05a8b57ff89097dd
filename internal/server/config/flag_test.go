package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name     string
		args     []string
		expected Config
	}{
		{
			name: "all flags set",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret",
				"-t", "60", "-u", "user", "-p", "password",
				"-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint", "-k", "sk-key",
			},
			expected: Config{
				EndpointAddrHTTP:        "127.0.0.1:9090",
				DatabaseDSN:             "db",
				SecretKey:               "secret",
				SessionValidityDuration: 60 * time.Minute,
				S3AccessKeyID:           "user",
				S3SecretAccessKey:       "password",
				S3Bucket:                "bucket",
				S3Region:                "us-west-1",
				S3BaseEndpoint:          "http://endpoint",
				OpenAIAPIKey:            "sk-key",
			},
		},
		{
			name: "unrelated flags ignored",
			args: []string{"cmd", "-z", "zzz", "-a", ":7070"},
			expected: Config{
				EndpointAddrHTTP: ":7070",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			cfg := &Config{}
			parseFlags(cfg)

			assert.Equal(t, tt.expected, *cfg)
		})
	}
}
