package risk

import (
	"math"
	"math/rand"
)

const eulerGamma = 0.5772156649015329

type IsolationForestConfig struct {
	Trees         int
	MaxSamples    int
	Contamination float64
	Seed          int64
}

func DefaultIsolationForestConfig() IsolationForestConfig {
	return IsolationForestConfig{
		Trees:         100,
		MaxSamples:    256,
		Contamination: 0.1,
		Seed:          42,
	}
}

// IsolationForest is a one-dimensional isolation forest. Each Fit call seeds its
// own generator from Seed, so equal baselines always produce equal models.
type IsolationForest struct {
	cfg IsolationForestConfig
}

func NewIsolationForest(cfg IsolationForestConfig) *IsolationForest {
	def := DefaultIsolationForestConfig()
	if cfg.Trees <= 0 {
		cfg.Trees = def.Trees
	}
	if cfg.MaxSamples <= 0 {
		cfg.MaxSamples = def.MaxSamples
	}
	if cfg.Contamination <= 0 || cfg.Contamination > 0.5 {
		cfg.Contamination = def.Contamination
	}
	return &IsolationForest{cfg: cfg}
}

func (f *IsolationForest) Fit(baseline []float64) (OutlierModel, error) {
	if len(baseline) == 0 {
		return nil, ErrEmptyBaseline
	}

	rng := rand.New(rand.NewSource(f.cfg.Seed))
	sampleSize := min(f.cfg.MaxSamples, len(baseline))
	heightLimit := int(math.Ceil(math.Log2(float64(max(sampleSize, 2)))))

	model := &forestModel{
		trees: make([]*isolationNode, f.cfg.Trees),
		norm:  averagePathLength(sampleSize),
	}
	if model.norm == 0 {
		model.norm = 1
	}

	for i := range model.trees {
		model.trees[i] = buildIsolationTree(rng, subsample(rng, baseline, sampleSize), 0, heightLimit)
	}

	// порог считаем по подвыборке того же размера, что и деревья
	offsetSample := subsample(rng, baseline, sampleSize)
	trainScores := make([]float64, len(offsetSample))
	for i, x := range offsetSample {
		trainScores[i] = model.normality(x)
	}
	model.offset = percentile(trainScores, 100*f.cfg.Contamination)

	return model, nil
}

type isolationNode struct {
	split       float64
	left, right *isolationNode
	size        int
}

func (n *isolationNode) leaf() bool {
	return n.left == nil
}

func buildIsolationTree(rng *rand.Rand, sample []float64, depth, limit int) *isolationNode {
	if len(sample) <= 1 || depth >= limit {
		return &isolationNode{size: len(sample)}
	}

	lo, hi := sample[0], sample[0]
	for _, v := range sample[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if lo == hi {
		return &isolationNode{size: len(sample)}
	}

	split := lo + rng.Float64()*(hi-lo)
	var left, right []float64
	for _, v := range sample {
		if v <= split {
			left = append(left, v)
		} else {
			right = append(right, v)
		}
	}

	return &isolationNode{
		split: split,
		left:  buildIsolationTree(rng, left, depth+1, limit),
		right: buildIsolationTree(rng, right, depth+1, limit),
		size:  len(sample),
	}
}

func subsample(rng *rand.Rand, values []float64, size int) []float64 {
	out := make([]float64, size)
	for i, idx := range rng.Perm(len(values))[:size] {
		out[i] = values[idx]
	}
	return out
}

// averagePathLength is c(n): the mean path length of an unsuccessful BST search.
func averagePathLength(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	}
	fn := float64(n)
	return 2*(math.Log(fn-1)+eulerGamma) - 2*(fn-1)/fn
}

type forestModel struct {
	trees  []*isolationNode
	norm   float64
	offset float64
}

func (m *forestModel) Score(amount float64) (bool, float64) {
	decision := m.normality(amount) - m.offset
	return decision < 0, decision
}

// normality is the negated anomaly score -2^(-E[h(x)]/c(n)); higher is more normal.
func (m *forestModel) normality(x float64) float64 {
	total := 0.0
	for _, tree := range m.trees {
		total += pathLength(tree, x, 0)
	}
	meanDepth := total / float64(len(m.trees))
	return -math.Pow(2, -meanDepth/m.norm)
}

func pathLength(node *isolationNode, x float64, depth int) float64 {
	for !node.leaf() {
		if x <= node.split {
			node = node.left
		} else {
			node = node.right
		}
		depth++
	}
	return float64(depth) + averagePathLength(node.size)
}
