package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/creatv/creatv/constant"
	"github.com/creatv/creatv/where"
	"github.com/spf13/viper"
)

// Path is the location of creatv.toml.
func Path() string {
	return filepath.Join(where.Config(), constant.Creatv+".toml")
}

// Parse converts command line words to the type of the field's default value.
// Lists take every word, scalars exactly one.
func (f *Field) Parse(words []string) (any, error) {
	if len(words) == 0 {
		return nil, errors.New("value is required")
	}

	if _, ok := f.Value.([]string); ok {
		return words, nil
	}

	if len(words) > 1 {
		return nil, fmt.Errorf("%s takes a single value, got %d", f.Key, len(words))
	}

	raw := strings.TrimSpace(words[0])
	switch f.Value.(type) {
	case string:
		return raw, nil
	case int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer value for %s: %s", f.Key, raw)
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value for %s: %s", f.Key, raw)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%s cannot be set from the command line", f.Key)
	}
}

// Write saves the current settings to creatv.toml, creating the file when missing.
func Write() error {
	err := viper.WriteConfig()

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfig()
	}

	return err
}
