package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	errUtils "github.com/oste/expo-cli/errors"
	log "github.com/oste/expo-cli/pkg/logger"
	"github.com/oste/expo-cli/pkg/schema"
)

const (
	appConfigFileName   = "app.json"
	packageJSONFileName = "package.json"
)

// LoadAppConfig reads the effective application configuration from
// `app.json` in the project root. Configurations that nest everything under
// an `expo` key and bare configurations are both accepted.
func LoadAppConfig(projectDir string) (*schema.ExpoConfig, error) {
	path := filepath.Join(projectDir, appConfigFileName)
	if _, err := os.Stat(path); err != nil {
		return nil, errUtils.Build(errUtils.ErrInvalidAppConfig).
			WithCause(err).
			WithContext("path", path).
			WithHint("Run this command from the project root, or pass --project-dir").
			Err()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, errUtils.Build(errUtils.ErrInvalidAppConfig).
			WithCause(err).
			WithContext("path", path).
			Err()
	}

	var exp schema.ExpoConfig
	if v.IsSet("expo") {
		var app schema.AppConfig
		if err := v.Unmarshal(&app); err != nil {
			return nil, errUtils.Build(errUtils.ErrInvalidAppConfig).WithCause(err).WithContext("path", path).Err()
		}
		exp = app.Expo
	} else {
		if err := v.Unmarshal(&exp); err != nil {
			return nil, errUtils.Build(errUtils.ErrInvalidAppConfig).WithCause(err).WithContext("path", path).Err()
		}
	}

	log.Debug("Loaded app config", "path", path, "slug", exp.Slug)
	return &exp, nil
}

// LoadPackageJSON reads the raw dependency manifest from `package.json` in
// the project root.
func LoadPackageJSON(projectDir string) (*schema.PackageJSON, error) {
	path := filepath.Join(projectDir, packageJSONFileName)
	if _, err := os.Stat(path); err != nil {
		return nil, errUtils.Build(errUtils.ErrInvalidAppConfig).
			WithCause(err).
			WithContext("path", path).
			Err()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, errUtils.Build(errUtils.ErrInvalidAppConfig).
			WithCause(err).
			WithContext("path", path).
			Err()
	}

	var pkg schema.PackageJSON
	if err := v.Unmarshal(&pkg); err != nil {
		return nil, errUtils.Build(errUtils.ErrInvalidAppConfig).WithCause(err).WithContext("path", path).Err()
	}

	log.Debug("Loaded package manifest", "path", path, "dependencies", len(pkg.Dependencies))
	return &pkg, nil
}
