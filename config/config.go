// Package config owns the viper-backed settings of the client: defaults, environment bindings and the TOML file.
package config

import (
	"errors"
	"strings"

	"github.com/creatv/creatv/constant"
	"github.com/creatv/creatv/filesystem"
	"github.com/creatv/creatv/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps configuration keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup registers defaults and environment bindings, then reads creatv.toml if present.
func Setup() error {
	viper.SetConfigName(constant.Creatv)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Creatv)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	return nil
}
