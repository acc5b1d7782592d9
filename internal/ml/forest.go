package ml

import (
	"math"
	"math/rand"
	"sort"
)

// TreeNode is one node of a CART classification tree. Exported fields keep
// the structure gob-serializable inside stored model artifacts.
type TreeNode struct {
	Leaf      bool
	Class     int
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
}

// Forest is a bagged ensemble of CART trees with per-split feature
// subsampling, the plain-Go equivalent of the usual random-forest setup.
type Forest struct {
	Trees        []*TreeNode
	ClassCount   int
	FeatureCount int
}

type ForestConfig struct {
	TreeCount   int
	MaxDepth    int
	MinLeafSize int
	MaxFeatures int // 0 means sqrt of the feature count
	Seed        int64
}

func (config ForestConfig) withDefaults(featureCount int) ForestConfig {
	if config.TreeCount <= 0 {
		config.TreeCount = 100
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = 12
	}
	if config.MinLeafSize <= 0 {
		config.MinLeafSize = 1
	}
	if config.MaxFeatures <= 0 || config.MaxFeatures > featureCount {
		config.MaxFeatures = int(math.Max(1, math.Round(math.Sqrt(float64(featureCount)))))
	}
	return config
}

// TrainForest fits the ensemble on already-scaled samples. Training is
// deterministic for a fixed config seed.
func TrainForest(samples [][]float64, labels []int, classCount int, config ForestConfig) *Forest {
	if len(samples) == 0 {
		return &Forest{ClassCount: classCount}
	}

	featureCount := len(samples[0])
	config = config.withDefaults(featureCount)

	forest := &Forest{
		Trees:        make([]*TreeNode, 0, config.TreeCount),
		ClassCount:   classCount,
		FeatureCount: featureCount,
	}

	for treeIndex := 0; treeIndex < config.TreeCount; treeIndex++ {
		rng := rand.New(rand.NewSource(config.Seed + int64(treeIndex)))

		indices := make([]int, len(samples))
		for position := range indices {
			indices[position] = rng.Intn(len(samples))
		}

		tree := growTree(samples, labels, indices, classCount, config, config.MaxDepth, rng)
		forest.Trees = append(forest.Trees, tree)
	}

	return forest
}

// Predict returns the majority-vote class for one scaled feature vector.
func (forest *Forest) Predict(features []float64) int {
	votes := make([]int, forest.ClassCount)
	for _, tree := range forest.Trees {
		class := classify(tree, features)
		if class >= 0 && class < len(votes) {
			votes[class]++
		}
	}

	best := 0
	for class, count := range votes {
		if count > votes[best] {
			best = class
		}
	}
	return best
}

// Accuracy scores the forest against a labelled sample set.
func (forest *Forest) Accuracy(samples [][]float64, labels []int) float64 {
	if len(samples) == 0 {
		return 0
	}
	correct := 0
	for index, sample := range samples {
		if forest.Predict(sample) == labels[index] {
			correct++
		}
	}
	return float64(correct) / float64(len(samples))
}

func classify(node *TreeNode, features []float64) int {
	for !node.Leaf {
		if features[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Class
}

func growTree(samples [][]float64, labels []int, indices []int, classCount int, config ForestConfig, depth int, rng *rand.Rand) *TreeNode {
	counts := classCounts(labels, indices, classCount)

	if depth <= 0 || len(indices) < 2*config.MinLeafSize || isPure(counts) {
		return &TreeNode{Leaf: true, Class: majorityClass(counts)}
	}

	feature, threshold, found := bestSplit(samples, labels, indices, classCount, config, rng)
	if !found {
		return &TreeNode{Leaf: true, Class: majorityClass(counts)}
	}

	leftIndices := make([]int, 0, len(indices))
	rightIndices := make([]int, 0, len(indices))
	for _, index := range indices {
		if samples[index][feature] <= threshold {
			leftIndices = append(leftIndices, index)
		} else {
			rightIndices = append(rightIndices, index)
		}
	}

	if len(leftIndices) < config.MinLeafSize || len(rightIndices) < config.MinLeafSize {
		return &TreeNode{Leaf: true, Class: majorityClass(counts)}
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      growTree(samples, labels, leftIndices, classCount, config, depth-1, rng),
		Right:     growTree(samples, labels, rightIndices, classCount, config, depth-1, rng),
	}
}

func bestSplit(samples [][]float64, labels []int, indices []int, classCount int, config ForestConfig, rng *rand.Rand) (int, float64, bool) {
	featureCount := len(samples[0])
	candidates := rng.Perm(featureCount)[:config.MaxFeatures]
	sort.Ints(candidates)

	bestGini := math.Inf(1)
	bestFeature := -1
	bestThreshold := 0.0

	for _, feature := range candidates {
		values := make([]float64, 0, len(indices))
		for _, index := range indices {
			values = append(values, samples[index][feature])
		}
		sort.Float64s(values)

		for position := 1; position < len(values); position++ {
			if values[position] == values[position-1] {
				continue
			}
			threshold := (values[position] + values[position-1]) / 2

			gini := weightedGini(samples, labels, indices, feature, threshold, classCount)
			if gini < bestGini {
				bestGini = gini
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

func weightedGini(samples [][]float64, labels []int, indices []int, feature int, threshold float64, classCount int) float64 {
	leftCounts := make([]int, classCount)
	rightCounts := make([]int, classCount)
	leftTotal := 0
	rightTotal := 0

	for _, index := range indices {
		if samples[index][feature] <= threshold {
			leftCounts[labels[index]]++
			leftTotal++
		} else {
			rightCounts[labels[index]]++
			rightTotal++
		}
	}

	total := float64(leftTotal + rightTotal)
	return float64(leftTotal)/total*gini(leftCounts, leftTotal) +
		float64(rightTotal)/total*gini(rightCounts, rightTotal)
}

func gini(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, count := range counts {
		fraction := float64(count) / float64(total)
		impurity -= fraction * fraction
	}
	return impurity
}

func classCounts(labels []int, indices []int, classCount int) []int {
	counts := make([]int, classCount)
	for _, index := range indices {
		counts[labels[index]]++
	}
	return counts
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, count := range counts {
		if count > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func majorityClass(counts []int) int {
	best := 0
	for class, count := range counts {
		if count > counts[best] {
			best = class
		}
	}
	return best
}
