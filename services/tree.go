package services

import (
	"fmt"
)

// TreeNode is one node of a flattened binary decision tree. Internal nodes send
// rows with value <= Threshold to LeftChild.
type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassIdx   int     `json:"class_idx"`
	IsLeaf     bool    `json:"is_leaf"`
}

// Tree is a flattened decision tree rooted at node 0.
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// Ensemble predicts by majority vote over its trees. A single tree ensemble is
// a plain decision tree.
type Ensemble struct {
	kind     string
	features []string
	classes  []string
	trees    []Tree
}

// Kind returns the artifact type the ensemble was built from.
func (e *Ensemble) Kind() string { return e.kind }

// Classes returns the labels the ensemble can emit.
func (e *Ensemble) Classes() []string { return append([]string(nil), e.classes...) }

// TreeCount returns the number of voting trees.
func (e *Ensemble) TreeCount() int { return len(e.trees) }

func (e *Ensemble) Predict(frame Frame) ([]string, error) {
	columnIdx := make(map[string]int, len(frame.Columns))
	for i, name := range frame.Columns {
		columnIdx[name] = i
	}

	// features[i] of the model reads frame column order[i]
	order := make([]int, len(e.features))
	for i, name := range e.features {
		idx, ok := columnIdx[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingFeature, name)
		}
		order[i] = idx
	}

	labels := make([]string, 0, len(frame.Rows))
	features := make([]float64, len(e.features))
	for r, row := range frame.Rows {
		if len(row) != len(frame.Columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", r, len(row), len(frame.Columns))
		}
		for i, idx := range order {
			features[i] = row[idx]
		}

		classIdx, err := e.vote(features)
		if err != nil {
			return nil, err
		}
		labels = append(labels, e.classes[classIdx])
	}
	return labels, nil
}

func (e *Ensemble) vote(features []float64) (int, error) {
	counts := make([]int, len(e.classes))
	for t := range e.trees {
		classIdx, err := e.trees[t].predict(features, len(e.classes))
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", t, err)
		}
		counts[classIdx]++
	}

	// ties go to the lowest class index
	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return best, nil
}

func (t *Tree) predict(features []float64, classCount int) (int, error) {
	if len(t.Nodes) == 0 {
		return 0, fmt.Errorf("%w: empty tree", ErrInvalidTree)
	}

	idx := 0
	// a well formed tree never visits more nodes than it has
	for steps := 0; steps < len(t.Nodes); steps++ {
		node := t.Nodes[idx]
		if node.IsLeaf {
			if node.ClassIdx < 0 || node.ClassIdx >= classCount {
				return 0, fmt.Errorf("%w: leaf %d class index %d out of range", ErrInvalidTree, idx, node.ClassIdx)
			}
			return node.ClassIdx, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return 0, fmt.Errorf("%w: node %d feature index %d out of range", ErrInvalidTree, idx, node.FeatureIdx)
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(t.Nodes) {
			return 0, fmt.Errorf("%w: child index %d out of range", ErrInvalidTree, idx)
		}
	}
	return 0, fmt.Errorf("%w: cycle detected", ErrInvalidTree)
}
