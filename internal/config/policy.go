package config

import (
	"slices"
	"strings"
)

// CurrentConfigVersion is written by `seshat` examples and accepted by Load.
const CurrentConfigVersion = "1"

var supportedConfigVersions = []string{CurrentConfigVersion}

var normalizeModes = []string{NormalizePlain, NormalizeMarkdown, NormalizeNone}

func IsSupportedConfigVersion(v string) bool {
	return slices.Contains(supportedConfigVersions, v)
}

// IsNormalizeMode reports whether mode is a known normalize.mode.
func IsNormalizeMode(mode string) bool {
	return slices.Contains(normalizeModes, mode)
}

func supportedVersionsList() string {
	return strings.Join(supportedConfigVersions, ", ")
}
