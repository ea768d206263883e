package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalTOML = `
[database]
host = "localhost"
user = "clinic"
dbname = "clinic"

[payfast]
merchant_id = "10000100"
merchant_key = "46f0cd694581a"
notify_url = "https://clinic.test/api/v1/payments/notify"
timeout = "3s"

[auth]
jwt_secret = "0123456789abcdef0123"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	// .env ищется в рабочей директории, уводим тест во временную
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalTOML))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, int64(1000), cfg.Booking.Fee)
	assert.True(t, cfg.PayFast.VerifySignature)
	assert.Equal(t, 3*time.Second, cfg.PayFast.Timeout.Std())
	assert.Equal(t, "host=localhost port=5432 user=clinic dbname=clinic sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, minimalTOML)
	t.Setenv("CLINIC_PAYFAST_PASSPHRASE", "jt7NOE43FZPn")
	t.Setenv("CLINIC_DATABASE_PASSWORD", "secret")
	t.Setenv("CLINIC_BOOKING_FEE", "2500")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "jt7NOE43FZPn", cfg.PayFast.Passphrase)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "password='secret'")
	assert.Equal(t, int64(2500), cfg.Booking.Fee)
}

func TestLoad_DotEnv(t *testing.T) {
	path := writeConfig(t, minimalTOML)
	require.NoError(t, os.WriteFile(".env", []byte("CLINIC_AUTH_ISSUER=clinic-auth\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CLINIC_AUTH_ISSUER") })

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "clinic-auth", cfg.Auth.Issuer)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		_, err := Load("nope.toml")
		assert.ErrorIs(t, err, ErrReadConfig)
	})

	t.Run("short jwt secret", func(t *testing.T) {
		path := writeConfig(t, minimalTOML+"\n")
		t.Setenv("CLINIC_AUTH_JWT_SECRET", "short")
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("mail enabled without host", func(t *testing.T) {
		path := writeConfig(t, minimalTOML+"\n[mail]\nenabled = true\nfrom = \"noreply@clinic.test\"\n")
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
