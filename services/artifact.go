package services

import (
	"fmt"
	"io"

	"k8s.io/apimachinery/pkg/util/yaml"
)

const (
	ModelTypeDecisionTree = "decision_tree"
	ModelTypeRandomForest = "random_forest"
)

// decoder look-ahead used to tell JSON from YAML
const sniffBufferSize = 4096

// Artifact is the serialized form of a trained classifier. The same document
// may be written as JSON or YAML.
type Artifact struct {
	Type         string   `json:"type"`
	FeatureNames []string `json:"feature_names"`
	Classes      []string `json:"classes"`
	Trees        []Tree   `json:"trees"`
}

// DecodeArtifact reads a JSON or YAML artifact document.
func DecodeArtifact(r io.Reader) (*Artifact, error) {
	var artifact Artifact
	if err := yaml.NewYAMLOrJSONDecoder(r, sniffBufferSize).Decode(&artifact); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return &artifact, nil
}

// BuildClassifier checks the artifact header and turns it into a classifier.
// Node level problems are reported when a prediction walks into them.
func BuildClassifier(artifact *Artifact) (*Ensemble, error) {
	switch artifact.Type {
	case ModelTypeDecisionTree:
		if len(artifact.Trees) != 1 {
			return nil, fmt.Errorf("%w: decision_tree needs exactly one tree, got %d", ErrInvalidArtifact, len(artifact.Trees))
		}
	case ModelTypeRandomForest:
		if len(artifact.Trees) == 0 {
			return nil, fmt.Errorf("%w: random_forest has no trees", ErrInvalidArtifact)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModelType, artifact.Type)
	}

	if len(artifact.Classes) == 0 {
		return nil, fmt.Errorf("%w: no classes", ErrInvalidArtifact)
	}
	if len(artifact.FeatureNames) == 0 {
		return nil, fmt.Errorf("%w: no feature names", ErrInvalidArtifact)
	}

	seen := make(map[string]struct{}, len(artifact.FeatureNames))
	for _, name := range artifact.FeatureNames {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate feature %q", ErrInvalidArtifact, name)
		}
		seen[name] = struct{}{}
	}

	for i, tree := range artifact.Trees {
		if len(tree.Nodes) == 0 {
			return nil, fmt.Errorf("%w: tree %d has no nodes", ErrInvalidArtifact, i)
		}
	}

	return &Ensemble{
		kind:     artifact.Type,
		features: append([]string(nil), artifact.FeatureNames...),
		classes:  append([]string(nil), artifact.Classes...),
		trees:    artifact.Trees,
	}, nil
}
