// Package config loads the values the pipeline stack is declared from.
//
// Values are looked up by key in an ordered list of sources (CDK context,
// environment, in-memory maps). The first source that has a key wins.
// Two keys are required: secretName and myConfigVar. Everything else has a
// default.
package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Config keys.
const (
	KeySecretName       = "secretName"
	KeyMyConfigVar      = "myConfigVar"
	KeyGitHubOwner      = "githubOwner"
	KeyGitHubRepo       = "githubRepo"
	KeyGitHubBranch     = "githubBranch"
	KeyTopicDisplayName = "topicDisplayName"
	KeyBuildImage       = "buildImage"
	KeyComputeType      = "computeType"
	KeyBuildTimeout     = "buildTimeout"
	KeyBuildspecPath    = "buildspecPath"
	KeyAccount          = "account"
	KeyRegion           = "region"
	KeyFailureAlarms    = "failureAlarms"
)

// RequiredKeys lists the keys Load refuses to default.
var RequiredKeys = []string{KeySecretName, KeyMyConfigVar}

// Defaults for the optional keys.
var Defaults = map[string]string{
	KeyGitHubOwner:      "NAME_OF_ACCOUNT",
	KeyGitHubRepo:       "NAME_OF_REPO",
	KeyGitHubBranch:     "master",
	KeyTopicDisplayName: "pipesns",
	KeyBuildImage:       "aws/codebuild/standard:7.0",
	KeyComputeType:      "BUILD_GENERAL1_SMALL",
	KeyBuildTimeout:     "10",
	KeyBuildspecPath:    "./buildspec.yaml",
	KeyFailureAlarms:    "false",
}

// Source is a key/value store config values are read from.
type Source interface {
	Name() string
	Lookup(key string) (string, bool)
}

// Config holds the validated configuration of the pipeline stack.
type Config struct {
	// SecretName names the Secrets Manager secret holding the GitHub OAuth
	// token. It is treated as sensitive and never printed.
	SecretName  Secret `validate:"required"`
	MyConfigVar string `validate:"required"`

	GitHubOwner  string `validate:"required"`
	GitHubRepo   string `validate:"required"`
	GitHubBranch string `validate:"required"`

	// SNS display names are limited to 10 characters when used for SMS.
	TopicDisplayName string `validate:"required,max=10"`

	BuildImage    string `validate:"required"`
	ComputeType   string `validate:"required,oneof=BUILD_GENERAL1_SMALL BUILD_GENERAL1_MEDIUM BUILD_GENERAL1_LARGE BUILD_GENERAL1_XLARGE BUILD_GENERAL1_2XLARGE"`
	BuildTimeout  int    `validate:"min=5,max=480"`
	BuildspecPath string `validate:"required"`

	// FailureAlarms adds a CloudWatch alarm on failed builds that notifies
	// the pipeline topic.
	FailureAlarms bool

	Account string
	Region  string
}

// Load reads all keys from the sources and validates the result. All
// missing or malformed keys are reported together.
func Load(sources ...Source) (*Config, error) {
	var readErrs []string

	names := make([]string, 0, len(sources))
	for _, src := range sources {
		names = append(names, src.Name())
	}

	// from returns the value of key and the name of the source it came from.
	from := func(key string) (string, string) {
		for _, src := range sources {
			if v, ok := src.Lookup(key); ok {
				return v, src.Name()
			}
		}
		return Defaults[key], "defaults"
	}
	lookup := func(key string) string {
		v, _ := from(key)
		return v
	}
	require := func(key string) string {
		v := lookup(key)
		if v == "" {
			readErrs = append(readErrs, fmt.Sprintf("config key %q is required (context %q or env %s), not set in [%s]",
				key, ContextKey(key), EnvVar(key), strings.Join(names, ", ")))
		}
		return v
	}

	cfg := &Config{
		SecretName:       Secret(require(KeySecretName)),
		MyConfigVar:      require(KeyMyConfigVar),
		GitHubOwner:      lookup(KeyGitHubOwner),
		GitHubRepo:       lookup(KeyGitHubRepo),
		GitHubBranch:     lookup(KeyGitHubBranch),
		TopicDisplayName: lookup(KeyTopicDisplayName),
		BuildImage:       lookup(KeyBuildImage),
		ComputeType:      lookup(KeyComputeType),
		BuildspecPath:    lookup(KeyBuildspecPath),
		Account:          lookup(KeyAccount),
		Region:           lookup(KeyRegion),
	}

	timeout, origin := from(KeyBuildTimeout)
	n, err := strconv.Atoi(timeout)
	if err != nil {
		readErrs = append(readErrs, fmt.Sprintf("config key %q must be an integer, got %q from %s",
			KeyBuildTimeout, timeout, origin))
	}
	cfg.BuildTimeout = n

	alarms, origin := from(KeyFailureAlarms)
	b, err := strconv.ParseBool(alarms)
	if err != nil {
		readErrs = append(readErrs, fmt.Sprintf("config key %q must be a boolean, got %q from %s",
			KeyFailureAlarms, alarms, origin))
	}
	cfg.FailureAlarms = b

	if len(readErrs) > 0 {
		return nil, errors.Newf("config read errors:\n  - %s", strings.Join(readErrs, "\n  - "))
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			msgs := make([]string, 0, len(validationErrs))
			for _, e := range validationErrs {
				msgs = append(msgs, formatValidationError(e))
			}
			sort.Strings(msgs)
			return errors.Newf("config validation errors:\n  - %s", strings.Join(msgs, "\n  - "))
		}
		return errors.Wrap(err, "config validation failed")
	}
	return nil
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "max":
		return fmt.Sprintf("%s exceeds maximum of %s (got %q)", e.Field(), e.Param(), fmt.Sprint(e.Value()))
	case "min":
		return fmt.Sprintf("%s is below minimum of %s (got %q)", e.Field(), e.Param(), fmt.Sprint(e.Value()))
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got %q)", e.Field(), e.Param(), fmt.Sprint(e.Value()))
	default:
		return fmt.Sprintf("%s failed validation %q", e.Field(), e.Tag())
	}
}

// MapSource is an in-memory Source.
type MapSource map[string]string

func (m MapSource) Name() string { return "map" }

func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
