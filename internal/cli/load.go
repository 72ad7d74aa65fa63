package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"argpred/internal/config"
)

// EnvPrefix prefixes every environment setting: ARGPRED_MODEL,
// ARGPRED_MAX_LENGTH and so on.
const EnvPrefix = "ARGPRED"

// Load resolves the settings of fs in order of precedence: explicit flags,
// then environment, then the --config file, then flag defaults. The result
// is validated.
func Load(fs *pflag.FlagSet) (config.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range config.Keys {
		f := fs.Lookup(key)
		if f == nil {
			return config.Config{}, fmt.Errorf("flag --%s not registered", key)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return config.Config{}, err
		}
	}

	if path, _ := fs.GetString(FlagConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return config.Config{}, fmt.Errorf("decode settings: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}
