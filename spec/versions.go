package spec

import "fmt"

// Version represents each supported canonical release of the OpenAPI
// Specification that inferspec can target.
type Version int

const (
	// VersionUnknown represents an unknown or unsupported target version
	VersionUnknown Version = iota
	// Version300 OpenAPI Specification Version 3.0.0
	Version300
	// Version301 OpenAPI Specification Version 3.0.1
	Version301
	// Version302 OpenAPI Specification Version 3.0.2
	Version302
	// Version303 OpenAPI Specification Version 3.0.3
	Version303
	// Version304 OpenAPI Specification Version 3.0.4
	Version304
	// Version310 OpenAPI Specification Version 3.1.0
	Version310
	// Version311 OpenAPI Specification Version 3.1.1
	Version311
	// Version312 OpenAPI Specification Version 3.1.2
	Version312
)

var (
	versionToString = map[Version]string{
		Version300: "3.0.0",
		Version301: "3.0.1",
		Version302: "3.0.2",
		Version303: "3.0.3",
		Version304: "3.0.4",
		Version310: "3.1.0",
		Version311: "3.1.1",
		Version312: "3.1.2",
	}

	stringToVersion = func() map[string]Version {
		m := make(map[string]Version, len(versionToString))
		for k, v := range versionToString {
			m[v] = k
		}
		return m
	}()
)

// String returns the canonical version string (e.g., "3.1.0").
func (v Version) String() string {
	if s, ok := versionToString[v]; ok {
		return s
	}
	return "unknown"
}

// ParseVersion converts a version string to its enumerated Version.
// Unsupported strings return VersionUnknown with an error.
func ParseVersion(s string) (Version, error) {
	if v, ok := stringToVersion[s]; ok {
		return v, nil
	}
	return VersionUnknown, fmt.Errorf("unsupported OpenAPI version %q", s)
}

// Is30 reports whether v is in the 3.0.x series.
func (v Version) Is30() bool {
	return v >= Version300 && v <= Version304
}

// Is31 reports whether v is in the 3.1.x series.
func (v Version) Is31() bool {
	return v >= Version310 && v <= Version312
}

// Valid reports whether v is a supported target version.
func (v Version) Valid() bool {
	_, ok := versionToString[v]
	return ok
}

// DefaultJSONSchemaDialect is the dialect URI declared by generated 3.1.x
// documents.
const DefaultJSONSchemaDialect = "https://spec.openapis.org/oas/3.1/dialect/base"
