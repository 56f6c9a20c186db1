package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GRIDPATH_"

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a lookup over the process environment, falling back to
// the values in dotenvPath. A missing dotenv file is not an error; real
// environment variables always win over the file.
func EnvLookup(dotenvPath string) (LookupFunc, error) {
	fileEnv, err := godotenv.Read(dotenvPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: reading %s: %w", dotenvPath, err)
		}
		fileEnv = map[string]string{}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}, nil
}

// MapLookup adapts a map to a LookupFunc.
func MapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// ApplyEnv overrides configuration fields from GRIDPATH_* variables.
func ApplyEnv(cfg *AppConfig, lookup LookupFunc) error {
	if lookup == nil {
		return nil
	}

	strs := map[string]*string{
		"DB_PATH":      &cfg.Storage.DBPath,
		"LAYOUTS_DIR":  &cfg.Layouts.Dir,
		"SSH_ADDRESS":  &cfg.SSH.Address,
		"SSH_HOST_KEY": &cfg.SSH.HostKey,
		"HTTP_ADDRESS": &cfg.HTTP.Address,
		"GIN_MODE":     &cfg.HTTP.GinMode,
		"LOG_LEVEL":    &cfg.Log.Level,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"GRID_WIDTH":       &cfg.Grid.Width,
		"GRID_HEIGHT":      &cfg.Grid.Height,
		"STEPS_PER_TICK":   &cfg.Search.StepsPerTick,
		"SSH_IDLE_TIMEOUT": &cfg.SSH.IdleTimeoutMinutes,
	}
	for key, dst := range ints {
		v, ok := lookup(EnvPrefix + key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s%s=%q is not an integer: %w", EnvPrefix, key, v, err)
		}
		*dst = n
	}

	if v, ok := lookup(EnvPrefix + "SEARCH_SPEED"); ok && v != "" {
		cfg.Search.Speed = SpeedPreset(v)
	}
	return nil
}
