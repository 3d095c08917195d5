package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"codeserver_cli/internal/compose"
)

const EnvPrefix = "CODESERVER_COMPOSE"

// Setting keys. They double as flag names and config file keys.
const (
	KeyOutput          = "output"
	KeyHostPort        = "host-port"
	KeyContainerPort   = "container-port"
	KeyUser            = "user"
	KeyProjectsSubdir  = "projects-subdir"
	KeyConfigSubdir    = "config-subdir"
	KeyUseDockerSocket = "use-docker-socket"
	KeyConfigFile      = "config"
	KeyDebug           = "debug"
)

// File is the schema of the optional YAML defaults file. Unset keys fall
// through to the flag defaults.
type File struct {
	Output          *string `yaml:"output"`
	HostPort        *int    `yaml:"host-port"`
	ContainerPort   *int    `yaml:"container-port"`
	User            *string `yaml:"user"`
	ProjectsSubdir  *string `yaml:"projects-subdir"`
	ConfigSubdir    *string `yaml:"config-subdir"`
	UseDockerSocket *bool   `yaml:"use-docker-socket"`
}

// LoadFile reads and strictly decodes a defaults file. An empty file is valid.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	var cfg File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &cfg, nil
}

func (f *File) settings() map[string]any {
	m := map[string]any{}
	set := func(key string, ok bool, v any) {
		if ok {
			m[key] = v
		}
	}
	set(KeyOutput, f.Output != nil, deref(f.Output))
	set(KeyHostPort, f.HostPort != nil, deref(f.HostPort))
	set(KeyContainerPort, f.ContainerPort != nil, deref(f.ContainerPort))
	set(KeyUser, f.User != nil, deref(f.User))
	set(KeyProjectsSubdir, f.ProjectsSubdir != nil, deref(f.ProjectsSubdir))
	set(KeyConfigSubdir, f.ConfigSubdir != nil, deref(f.ConfigSubdir))
	set(KeyUseDockerSocket, f.UseDockerSocket != nil, deref(f.UseDockerSocket))
	return m
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// Load builds a GenerationRequest from flags, CODESERVER_COMPOSE_* environment
// variables and the optional --config file, in that order of precedence.
func Load(flags *pflag.FlagSet) (compose.GenerationRequest, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return compose.GenerationRequest{}, fmt.Errorf("binding flags: %w", err)
	}

	if path := v.GetString(KeyConfigFile); path != "" {
		file, err := LoadFile(path)
		if err != nil {
			return compose.GenerationRequest{}, err
		}
		if err := v.MergeConfigMap(file.settings()); err != nil {
			return compose.GenerationRequest{}, fmt.Errorf("merging config file: %w", err)
		}
	}

	var missing []string
	for _, key := range []string{KeyOutput, KeyUser} {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, fmt.Sprintf("%q", key))
		}
	}
	if len(missing) > 0 {
		return compose.GenerationRequest{}, fmt.Errorf("required flag(s) %s not set", strings.Join(missing, ", "))
	}

	hostPort, err := cast.ToIntE(v.Get(KeyHostPort))
	if err != nil {
		return compose.GenerationRequest{}, fmt.Errorf("invalid %s: %w", KeyHostPort, err)
	}
	containerPort, err := cast.ToIntE(v.Get(KeyContainerPort))
	if err != nil {
		return compose.GenerationRequest{}, fmt.Errorf("invalid %s: %w", KeyContainerPort, err)
	}
	useSocket, err := cast.ToBoolE(v.Get(KeyUseDockerSocket))
	if err != nil {
		return compose.GenerationRequest{}, fmt.Errorf("invalid %s: %w", KeyUseDockerSocket, err)
	}

	return compose.GenerationRequest{
		OutputPath:      v.GetString(KeyOutput),
		HostPort:        hostPort,
		ContainerPort:   containerPort,
		UserName:        v.GetString(KeyUser),
		ProjectsSubdir:  v.GetString(KeyProjectsSubdir),
		ConfigSubdir:    v.GetString(KeyConfigSubdir),
		UseDockerSocket: useSocket,
	}, nil
}
