// Package buildspec reads and lints CodeBuild buildspec files.
package buildspec

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-yaml"
)

// Phase names in execution order.
var PhaseNames = []string{"install", "pre_build", "build", "post_build"}

// Spec is the part of the buildspec schema this package understands. Unknown
// keys are tolerated since the schema is owned by CodeBuild.
type Spec struct {
	Version   Version           `yaml:"version"`
	Env       *Env              `yaml:"env,omitempty"`
	Phases    map[string]Phase  `yaml:"phases"`
	Artifacts *Artifacts        `yaml:"artifacts,omitempty"`
	Reports   map[string]Report `yaml:"reports,omitempty"`
}

// Version is the buildspec schema version. It is usually written as a bare
// number (0.2) so it is decoded from the raw scalar.
type Version string

func (v *Version) UnmarshalYAML(data []byte) error {
	*v = Version(strings.Trim(strings.TrimSpace(string(data)), `"'`))
	return nil
}

// Env declares build environment variables.
type Env struct {
	Variables      map[string]string `yaml:"variables,omitempty"`
	ParameterStore map[string]string `yaml:"parameter-store,omitempty"`
	SecretsManager map[string]string `yaml:"secrets-manager,omitempty"`
}

// Phase is a list of commands.
type Phase struct {
	RuntimeVersions map[string]any `yaml:"runtime-versions,omitempty"`
	Commands        []string       `yaml:"commands"`
	Finally         []string       `yaml:"finally,omitempty"`
}

// Artifacts declares the build output.
type Artifacts struct {
	Files         []string `yaml:"files"`
	BaseDirectory string   `yaml:"base-directory,omitempty"`
	DiscardPaths  string   `yaml:"discard-paths,omitempty"`
}

// Report declares a test report group.
type Report struct {
	Files         []string `yaml:"files"`
	BaseDirectory string   `yaml:"base-directory,omitempty"`
	FileFormat    string   `yaml:"file-format,omitempty"`
}

// Load reads and lints the buildspec at path.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read buildspec")
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return spec, nil
}

// Parse decodes and lints a buildspec.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&spec); err != nil {
		return nil, errors.Wrap(err, "failed to parse buildspec")
	}
	if err := spec.Lint(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Lint checks the spec for problems CodeBuild would only report at build
// time.
func (s *Spec) Lint() error {
	var errs []string

	switch s.Version {
	case "0.1", "0.2":
	case "":
		errs = append(errs, "version is required")
	default:
		errs = append(errs, fmt.Sprintf("unsupported version %q", s.Version))
	}

	known := map[string]bool{}
	for _, name := range PhaseNames {
		known[name] = true
	}
	commands := 0
	for name, phase := range s.Phases {
		if !known[name] {
			errs = append(errs, fmt.Sprintf("unknown phase %q", name))
			continue
		}
		commands += len(phase.Commands)
	}
	if commands == 0 {
		errs = append(errs, "at least one phase must run a command")
	}

	if s.Artifacts != nil && len(s.Artifacts.Files) == 0 {
		errs = append(errs, "artifacts.files must not be empty")
	}
	for name, r := range s.Reports {
		if len(r.Files) == 0 {
			errs = append(errs, fmt.Sprintf("reports.%s.files must not be empty", name))
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return errors.Newf("invalid buildspec:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Commands returns all commands in phase order.
func (s *Spec) Commands() []string {
	var cmds []string
	for _, name := range PhaseNames {
		cmds = append(cmds, s.Phases[name].Commands...)
	}
	return cmds
}
