package services

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/keerthireddymada/plan-her-new/internal/ml"
)

// ClassifierArtifact is the serialized form of a single-label model: the
// fitted standardizer plus the tree ensemble.
type ClassifierArtifact struct {
	Scaler *ml.Scaler
	Forest *ml.Forest
}

// MultiLabelArtifact bundles the one-vs-rest symptom ensembles with the
// label vocabulary they were binarized against, so the inverse mapping is
// reproducible at inference time.
type MultiLabelArtifact struct {
	Scaler  *ml.Scaler
	Forests []*ml.Forest
	Labels  []string
}

func encodeArtifact(artifact any) ([]byte, error) {
	var buffer bytes.Buffer
	if err := gob.NewEncoder(&buffer).Encode(artifact); err != nil {
		return nil, fmt.Errorf("encode model artifact: %w", err)
	}
	return buffer.Bytes(), nil
}

func decodeClassifierArtifact(data []byte) (ClassifierArtifact, error) {
	artifact := ClassifierArtifact{}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&artifact); err != nil {
		return ClassifierArtifact{}, fmt.Errorf("decode model artifact: %w", err)
	}
	return artifact, nil
}

func decodeMultiLabelArtifact(data []byte) (MultiLabelArtifact, error) {
	artifact := MultiLabelArtifact{}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&artifact); err != nil {
		return MultiLabelArtifact{}, fmt.Errorf("decode model artifact: %w", err)
	}
	return artifact, nil
}
