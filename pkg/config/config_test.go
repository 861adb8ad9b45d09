package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/registro-clientes/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "logs.txt", cfg.Audit.FilePath)
	assert.Equal(t, "Sistema", cfg.Audit.DefaultActor)
	assert.Equal(t, "exports", cfg.Audit.ExportDir)
	assert.False(t, cfg.DB.Enabled)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_SobrescribeDesdeEnv(t *testing.T) {
	v := viper.New()
	v.Set("AUDIT_LOG_PATH", "/tmp/bitacora.txt")
	v.Set("AUDIT_DEFAULT_ACTOR", "cajero-1")
	v.Set("AUDIT_EXPORT_DIR", "/var/lib/registro/exports")
	v.Set("HTTP_PORT", "9090")
	v.Set("DB_ENABLED", "true")
	v.Set("DB_PASSWORD", "p@ss:w/rd")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/bitacora.txt", cfg.Audit.FilePath)
	assert.Equal(t, "cajero-1", cfg.Audit.DefaultActor)
	assert.Equal(t, "/var/lib/registro/exports", cfg.Audit.ExportDir)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.DB.Enabled)
	assert.Contains(t, cfg.DB.ConnectionString(), "p%40ss%3Aw%2Frd", "la contraseña debe ir codificada")
}

func TestFromViper_RutaVaciaEsError(t *testing.T) {
	v := viper.New()
	v.Set("AUDIT_LOG_PATH", "")
	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestFromViper_DirectorioDeExportacionVacioEsError(t *testing.T) {
	v := viper.New()
	v.Set("AUDIT_EXPORT_DIR", "")
	_, err := config.FromViper(v)
	assert.Error(t, err)
}
