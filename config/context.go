package config

import (
	"fmt"

	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// ContextNamespace prefixes every CDK context key read by ContextSource.
const ContextNamespace = "codepipeline:"

// ContextKey returns the CDK context key for a config key.
func ContextKey(key string) string {
	return ContextNamespace + key
}

type contextSource struct {
	scope constructs.Construct
}

// ContextSource reads config keys from the CDK context of scope, as set in
// cdk.json or with `cdk synth -c codepipeline:<key>=<value>`.
func ContextSource(scope constructs.Construct) Source {
	return contextSource{scope: scope}
}

func (contextSource) Name() string { return "cdk context" }

func (s contextSource) Lookup(key string) (string, bool) {
	val := s.scope.Node().TryGetContext(jsii.String(ContextKey(key)))
	if val == nil {
		return "", false
	}
	var str string
	switch v := val.(type) {
	case string:
		str = v
	case float64:
		str = fmt.Sprint(v)
	case bool:
		str = fmt.Sprint(v)
	default:
		return "", false
	}
	if str == "" {
		return "", false
	}
	return str, true
}
