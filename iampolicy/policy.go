// Package iampolicy builds IAM JSON policy documents.
package iampolicy

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Version is the current IAM policy language version.
const Version = "2012-10-17"

// ActionAssumeRole is the STS action a trust policy grants.
const ActionAssumeRole = "sts:AssumeRole"

// Document is an IAM policy document.
type Document struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// Statement is a single policy statement. Action and Service principals are
// kept as a string when there is one value, the way IAM echoes them back.
type Statement struct {
	Action    StringOrSlice `json:"Action"`
	Principal *Principal    `json:"Principal,omitempty"`
	Effect    string        `json:"Effect"`
	Sid       string        `json:"Sid"`
}

// Principal names who a statement applies to.
type Principal struct {
	Service StringOrSlice `json:"Service"`
}

// StringOrSlice marshals as a plain string when it has exactly one element.
type StringOrSlice []string

func (s StringOrSlice) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0])
	}
	return json.Marshal([]string(s))
}

func (s *StringOrSlice) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = StringOrSlice{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.Wrap(err, "expected string or array of strings")
	}
	*s = many
	return nil
}

// TrustPolicy returns a document with a single statement allowing the given
// services to assume the role.
func TrustPolicy(services ...string) Document {
	return Document{
		Version: Version,
		Statement: []Statement{{
			Action:    StringOrSlice{ActionAssumeRole},
			Principal: &Principal{Service: StringOrSlice(services)},
			Effect:    "Allow",
			Sid:       "",
		}},
	}
}

// JSON renders the document.
func (d Document) JSON() (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal policy document")
	}
	return string(data), nil
}

// Map renders the document as the generic map CloudFormation properties
// take.
func (d Document) Map() (map[string]any, error) {
	s, err := d.JSON()
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, errors.Wrap(err, "failed to decode policy document")
	}
	return m, nil
}

// Parse decodes a JSON policy document.
func Parse(s string) (Document, error) {
	var d Document
	if err := json.Unmarshal([]byte(s), &d); err != nil {
		return Document{}, errors.Wrap(err, "invalid policy document")
	}
	return d, nil
}
