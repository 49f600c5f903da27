package pipdeptree

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Package identifies an installed distribution in the inspected environment.
type Package struct {
	Key             string `json:"key"`
	Name            string `json:"package_name"`
	Version         string `json:"installed_version"`
	RequiredVersion string `json:"required_version,omitempty"`
}

// Node is one entry in the dependency tree. Dependencies holds the packages
// this one requires; with the flat format they are a single level deep, with
// the tree format they nest all the way down.
type Node struct {
	Package
	Dependencies []*Node
}

// rawNode mirrors both JSON shapes pipdeptree emits. The flat format wraps
// package fields in a "package" object; the tree format inlines them.
type rawNode struct {
	Package         *Package `json:"package"`
	Key             string   `json:"key"`
	Name            string   `json:"package_name"`
	Version         string   `json:"installed_version"`
	RequiredVersion string   `json:"required_version"`
	Dependencies    []*Node  `json:"dependencies"`
}

// UnmarshalJSON decodes a node from either pipdeptree JSON shape.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Package != nil {
		n.Package = *raw.Package
	} else {
		n.Package = Package{
			Key:             raw.Key,
			Name:            raw.Name,
			Version:         raw.Version,
			RequiredVersion: raw.RequiredVersion,
		}
	}
	n.Dependencies = raw.Dependencies
	return nil
}

// Decode parses a pipdeptree JSON document (a top-level array) into nodes.
func Decode(data []byte) ([]*Node, error) {
	var nodes []*Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

var nameSeparators = regexp.MustCompile(`[-_.]+`)

// NormalizeName canonicalizes a distribution name per Python packaging rules:
// lowercase, with runs of "-", "_" and "." collapsed to a single "-".
// "Typing_Extensions" and "typing.extensions" name the same package.
func NormalizeName(name string) string {
	return nameSeparators.ReplaceAllString(strings.ToLower(name), "-")
}
