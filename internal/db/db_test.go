package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cri010101/toelettatura-system/internal/config"
)

func TestConnConfig_ProductionSkipsVerification(t *testing.T) {
	cases := map[string]string{
		"disable":     "postgres://u:p@db.example.it:5432/toelettatura?sslmode=disable",
		"prefer":      "postgres://u:p@db.example.it:5432/toelettatura?sslmode=prefer",
		"verify-full": "postgres://u:p@db.example.it:5432/toelettatura?sslmode=verify-full",
	}

	for name, dsn := range cases {
		t.Run(name, func(t *testing.T) {
			c, err := connConfig(&config.Config{DBUrl: dsn, AppEnv: "production"})
			require.NoError(t, err)

			require.NotNil(t, c.TLSConfig)
			assert.True(t, c.TLSConfig.InsecureSkipVerify)
			assert.Nil(t, c.TLSConfig.VerifyPeerCertificate)

			for _, fb := range c.Fallbacks {
				if fb.TLSConfig != nil {
					assert.True(t, fb.TLSConfig.InsecureSkipVerify)
				}
			}
		})
	}
}

func TestConnConfig_DevelopmentKeepsDSN(t *testing.T) {
	c, err := connConfig(&config.Config{
		DBUrl:  "postgres://u:p@localhost:5432/toelettatura?sslmode=disable",
		AppEnv: "development",
	})
	require.NoError(t, err)
	assert.Nil(t, c.TLSConfig)

	c, err = connConfig(&config.Config{
		DBUrl:  "postgres://u:p@db.example.it:5432/toelettatura?sslmode=verify-full",
		AppEnv: "development",
	})
	require.NoError(t, err)
	require.NotNil(t, c.TLSConfig)
	assert.False(t, c.TLSConfig.InsecureSkipVerify)
	assert.Equal(t, "db.example.it", c.TLSConfig.ServerName)
}

func TestConnConfig_BadURL(t *testing.T) {
	_, err := connConfig(&config.Config{DBUrl: "postgres://u:p@localhost:notaport/x"})
	assert.ErrorContains(t, err, "parse database url")
}
