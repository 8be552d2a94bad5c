package updates

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/oste/expo-cli/errors"
	"github.com/oste/expo-cli/pkg/schema"
)

func TestResolveOptionsRuntimeVersionWins(t *testing.T) {
	exp := &schema.ExpoConfig{
		Slug:           "myapp",
		SdkVersion:     "43.0.0",
		RuntimeVersion: "1.0.0",
	}

	options, err := ResolveOptions(exp, "alice")
	require.NoError(t, err)

	assert.True(t, options.RuntimeBased())
	assert.Equal(t, "1.0.0", options.Version())
	assert.Empty(t, options.SdkVersion)
	assert.Equal(t, "https://exp.host/@alice/myapp", options.UpdateURL)
}

func TestResolveOptionsSdkVersionFallback(t *testing.T) {
	exp := &schema.ExpoConfig{
		Slug:       "myapp",
		SdkVersion: "43.0.0",
	}

	options, err := ResolveOptions(exp, "alice")
	require.NoError(t, err)

	assert.False(t, options.RuntimeBased())
	assert.Equal(t, "43.0.0", options.Version())
	assert.Empty(t, options.RuntimeVersion)
}

func TestResolveOptionsNeitherVersion(t *testing.T) {
	exp := &schema.ExpoConfig{Slug: "myapp"}

	_, err := ResolveOptions(exp, "alice")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errUtils.ErrMissingVersionConfig))
	assert.Contains(t, err.Error(), "runtimeVersion")
	assert.Contains(t, err.Error(), "sdkVersion")
}

func TestUpdateURL(t *testing.T) {
	tests := []struct {
		name     string
		username string
		slug     string
		want     string
	}{
		{
			name:     "authenticated user",
			username: "alice",
			slug:     "myapp",
			want:     "https://exp.host/@alice/myapp",
		},
		{
			name:     "anonymous when username empty",
			username: "",
			slug:     "myapp",
			want:     "https://exp.host/@anonymous/myapp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UpdateURL(tt.username, tt.slug))
		})
	}
}

func TestExpectedRecords(t *testing.T) {
	runtime := NewRuntimeVersionOptions("1.0.0", "https://exp.host/@alice/myapp")
	records, stale := expectedRecords(runtime)
	require.Len(t, records, 2)
	assert.Equal(t, KeyRuntimeVersion, records[0].key)
	assert.Equal(t, "1.0.0", records[0].value)
	assert.Equal(t, KeyUpdateURL, records[1].key)
	assert.Equal(t, KeySdkVersion, stale)

	sdk := NewSdkVersionOptions("43.0.0", "https://exp.host/@alice/myapp")
	records, stale = expectedRecords(sdk)
	require.Len(t, records, 2)
	assert.Equal(t, KeySdkVersion, records[0].key)
	assert.Equal(t, KeyRuntimeVersion, stale)
}
