package schema

// ExpoConfig is the effective application configuration, the `expo` object
// of `app.json`. Only the fields the configuration engine reads are declared;
// unknown keys are ignored.
type ExpoConfig struct {
	Name           string `json:"name" mapstructure:"name"`
	Slug           string `json:"slug" mapstructure:"slug"`
	Owner          string `json:"owner" mapstructure:"owner"`
	SdkVersion     string `json:"sdkVersion" mapstructure:"sdkVersion"`
	RuntimeVersion string `json:"runtimeVersion" mapstructure:"runtimeVersion"`
}

// AppConfig is the top-level shape of `app.json`.
type AppConfig struct {
	Expo ExpoConfig `json:"expo" mapstructure:"expo"`
}

// PackageJSON is the raw dependency manifest (`package.json`). The engine
// only reads the package name and declared dependency names.
type PackageJSON struct {
	Name            string            `json:"name" mapstructure:"name"`
	Dependencies    map[string]string `json:"dependencies" mapstructure:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies" mapstructure:"devDependencies"`
}

// HasDependency reports whether the named package appears among the declared
// dependencies or devDependencies.
func (p *PackageJSON) HasDependency(name string) bool {
	if p == nil {
		return false
	}
	if _, ok := p.Dependencies[name]; ok {
		return true
	}
	_, ok := p.DevDependencies[name]
	return ok
}
