// Package featureflag toggles optional behaviors from configuration.
package featureflag

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
)

// FeatureFlag is a lookup map for features that are enabled or disabled.
type FeatureFlag map[Flag]struct{}

// New returns feature flags initialized with the given list of flags.
func New(flags []string) FeatureFlag {
	featureFlag := make(FeatureFlag)
	for _, f := range flags {
		featureFlag[Flag(f)] = struct{}{}
	}
	return featureFlag
}

// Validate returns an error when a flag is not a known flag.
func (f FeatureFlag) Validate() error {
	for flag := range f {
		if _, ok := knownFlags[flag]; !ok {
			return errors.New("unknown feature flag").WithTag("flag", flag)
		}
	}
	return nil
}

func (f FeatureFlag) IsSet(flag Flag) bool {
	_, ok := f[flag]
	return ok
}

// IfSet runs do if flag is set.
func (f FeatureFlag) IfSet(flag Flag, do func()) {
	if !f.IsSet(flag) {
		return
	}
	do()
}

// IfNotSet runs do if flag is not set.
func (f FeatureFlag) IfNotSet(flag Flag, do func()) {
	if f.IsSet(flag) {
		return
	}
	do()
}
