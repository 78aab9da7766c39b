package configs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/csvvault/pkg/configs"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return dir
}

func TestInitConfig_Defaults(t *testing.T) {
	require.NoError(t, configs.InitConfig(t.TempDir()))

	cfg := configs.GetConfig()
	assert.Equal(t, configs.DefaultPort, cfg.Server.Port)
	assert.Equal(t, configs.EnvProduction, cfg.Server.Env)
	assert.False(t, cfg.Server.Debug)
	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.Equal(t, []string{"csv"}, cfg.Upload.AllowedExtensions)
	assert.EqualValues(t, 16000000, cfg.Upload.MaxSize)
	assert.Equal(t, time.Hour, cfg.Upload.TempTTL)
	assert.Equal(t, configs.SQLite, cfg.DB.Type)
	assert.False(t, cfg.Log.ToStdout)
	assert.Equal(t, "logs/csvvault.log", cfg.Log.FilePath)
	assert.Equal(t, 10, cfg.Log.MaxSize)
	assert.Equal(t, 10, cfg.Log.MaxBackups)
	assert.Equal(t, configs.KVTypeMemory, cfg.Cache.Type)
	assert.Equal(t, configs.MQTypeGoChannel, cfg.Events.Type)
	assert.False(t, cfg.Archive.Enabled)
}

func TestInitConfig_FileAndEnv(t *testing.T) {
	dir := writeConfig(t, "config.yaml", `
server:
  env: development
  port: 9090
upload:
  dir: /data/csv
  allowed_extensions: [".CSV", "tsv"]
db:
  type: postgresql
  dsn: "host=db user=x dbname=y"
`)

	t.Setenv("CSVVAULT_LOG_TO_STDOUT", "true")
	t.Setenv("CSVVAULT_SERVER_PORT", "9191")

	require.NoError(t, configs.InitConfig(dir))

	cfg := configs.GetConfig()
	assert.True(t, cfg.Server.IsDevelopment())
	assert.True(t, cfg.Server.Debug, "development env turns debug on")
	assert.Equal(t, 9191, cfg.Server.Port, "env overrides file")
	assert.Equal(t, "/data/csv", cfg.Upload.Dir)
	assert.Equal(t, []string{"csv", "tsv"}, cfg.Upload.AllowedExtensions)
	assert.True(t, cfg.Log.ToStdout)
	assert.Equal(t, "host=db user=x dbname=y", cfg.DB.GetDSN())
	assert.NotEmpty(t, configs.GetViper().ConfigFileUsed())
}

func TestInitConfig_Invalid(t *testing.T) {
	dir := writeConfig(t, "config.yaml", `
db:
  type: oracle
`)

	err := configs.InitConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestUploadConfig_IsAllowed(t *testing.T) {
	cfg := configs.Default()

	assert.True(t, cfg.Upload.IsAllowed("csv"))
	assert.True(t, cfg.Upload.IsAllowed("CSV"))
	assert.False(t, cfg.Upload.IsAllowed("txt"))
	assert.False(t, cfg.Upload.IsAllowed(""))
}

func TestDBConfig_GetDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  configs.DBConfig
		want string
	}{
		{
			name: "explicit dsn wins",
			cfg:  configs.DBConfig{Type: configs.MySQL, DSN: "file::memory:"},
			want: "file::memory:",
		},
		{
			name: "postgres",
			cfg: configs.DBConfig{
				Type: configs.PostgreSQL, Host: "h", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "disable",
			},
			want: "host=h port=5432 user=u password=p dbname=d sslmode=disable",
		},
		{
			name: "mysql",
			cfg:  configs.DBConfig{Type: configs.MariaDB, Host: "h", Port: 3306, User: "u", Password: "p", Database: "d"},
			want: "u:p@tcp(h:3306)/d?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "unknown",
			cfg:  configs.DBConfig{Type: "oracle"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.GetDSN())
		})
	}

	sqlite := configs.DBConfig{Type: configs.SQLite, Database: "csvvault"}
	assert.Contains(t, sqlite.GetDSN(), "file:csvvault.db?")
	assert.Contains(t, sqlite.GetDSN(), "foreign_keys")
}
