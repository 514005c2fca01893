package connection

import (
	"testing"

	"go-attendance/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(config.DBConfig{
		Host:     "db",
		Port:     "5432",
		User:     "hr",
		Password: "secret",
		Name:     "attendance",
		SSLMode:  "disable",
	})

	assert.Equal(t, "host=db user=hr password=secret dbname=attendance port=5432 sslmode=disable", dsn)
}
