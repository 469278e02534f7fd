// Package config provides the run configuration loader for seedlock.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/hypercompute/seedlock/internal/core/domain"
	"github.com/hypercompute/seedlock/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using an optional YAML file overlaid
// on the compiled-in defaults.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load returns the defaults overlaid with the file at path. An empty path
// means "use seedlock.yaml in the working directory if present"; an explicit
// path must exist.
func (l *Loader) Load(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = domain.ConfigFileName
	}

	//nolint:gosec // config path is operator-provided
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return domain.Config{}, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return domain.Config{}, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	overlay(&cfg, file)
	return cfg, nil
}

// overlay applies non-zero file fields over the defaults.
func overlay(cfg *domain.Config, file File) {
	setString(&cfg.HostOrgRepo, file.HostRepo)
	setString(&cfg.HostManifestName, file.HostManifestName)
	setString(&cfg.SeedOrgRepo, file.SeedRepo)
	setString(&cfg.LatestSeedRelease, file.LatestSeedRelease)
	setString(&cfg.LegacyPythonVersion, file.LegacyPythonVersion)
	setString(&cfg.LegacyPatchFile, file.LegacyPatchFile)
	setString(&cfg.ConstraintsGPUOnly, file.ConstraintsGPUOnly)
	setString(&cfg.ConstraintsTPUOnly, file.ConstraintsTPUOnly)
	setString(&cfg.ArtifactPrefix, file.ArtifactPrefix)
	setString(&cfg.OutputRoot, file.OutputRoot)
	setString(&cfg.ResolverBin, file.ResolverBin)

	if len(file.PythonVersions) > 0 {
		cfg.DefaultPythonVersions = file.PythonVersions
	}
	if len(file.SupportedPythonVersions) > 0 {
		cfg.SupportedPythonVersions = file.SupportedPythonVersions
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
