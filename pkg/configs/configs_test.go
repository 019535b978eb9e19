package configs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paradigmmc/paradigm/pkg/config"
	"github.com/paradigmmc/paradigm/pkg/configs"
)

func TestEmbeddedConfigsLoad(t *testing.T) {
	for name, b := range map[string][]byte{
		"full":    configs.DefaultConfigBytes,
		"minimal": configs.MinimalConfigBytes,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yml")
			require.NoError(t, os.WriteFile(path, b, 0644))
			v := viper.New()
			v.SetConfigFile(path)
			cfg, err := config.LoadConfig(v)
			require.NoError(t, err)
			assert.Equal(t, config.DefaultConfig.Format, cfg.Format)
		})
	}
}
