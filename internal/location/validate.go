package location

import (
	"github.com/ksyq12/vhostfrag/internal/errors"
)

// Validate checks that spec names its vhost and declares exactly one of
// Proxy, AliasRoot and WwwRoot. The vhost check runs first.
func Validate(spec Spec) error {
	if spec.VHost == "" {
		return errors.MissingVhost(spec.Name)
	}

	count := 0
	for _, set := range []bool{spec.AliasRoot != "", spec.WwwRoot != "", spec.Proxy != ""} {
		if set {
			count++
		}
	}

	switch {
	case count > 1:
		return errors.ConflictingContentSources(spec.VHost, spec.Name)
	case count == 0:
		return errors.MissingContentSource(spec.VHost, spec.Name)
	}
	return nil
}
