package updates

// MetadataKey enumerates the metadata records the engine owns. Each key maps
// to a platform-specific string: a plist key on iOS, a meta-data element
// name on Android.
type MetadataKey int

const (
	// KeySdkVersion identifies the SDK-version update identity record.
	KeySdkVersion MetadataKey = iota
	// KeyRuntimeVersion identifies the runtime-version update identity record.
	KeyRuntimeVersion
	// KeyUpdateURL identifies the update feed URL record.
	KeyUpdateURL
)

// plistKeys maps metadata keys to their Expo.plist key names.
var plistKeys = map[MetadataKey]string{
	KeySdkVersion:     "EXUpdatesSDKVersion",
	KeyRuntimeVersion: "EXUpdatesRuntimeVersion",
	KeyUpdateURL:      "EXUpdatesURL",
}

// manifestKeys maps metadata keys to their AndroidManifest meta-data names.
var manifestKeys = map[MetadataKey]string{
	KeySdkVersion:     "expo.modules.updates.EXPO_SDK_VERSION",
	KeyRuntimeVersion: "expo.modules.updates.EXPO_RUNTIME_VERSION",
	KeyUpdateURL:      "expo.modules.updates.EXPO_UPDATE_URL",
}

// metadataRecord is one key/value pair the engine must make authoritative.
type metadataRecord struct {
	key   MetadataKey
	value string
}

// expectedRecords returns the records to enforce for the given options and
// the identity key from the inactive mode that must be removed if present.
func expectedRecords(options Options) (records []metadataRecord, stale MetadataKey) {
	if options.RuntimeBased() {
		return []metadataRecord{
			{KeyRuntimeVersion, options.RuntimeVersion},
			{KeyUpdateURL, options.UpdateURL},
		}, KeySdkVersion
	}
	return []metadataRecord{
		{KeySdkVersion, options.SdkVersion},
		{KeyUpdateURL, options.UpdateURL},
	}, KeyRuntimeVersion
}
