package ml

import "fmt"

// DecisionTree is a fitted binary classification tree in the flat parallel-array
// layout tree exports use. Node i is a leaf when ChildrenLeft[i] is -1; Value[i] holds
// the class weights reaching it.
type DecisionTree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

const LEAF = -1

func (t *DecisionTree) validate(nFeatures int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("tree arrays disagree on node count %d", n)
	}
	for i := 0; i < n; i++ {
		left, right := t.ChildrenLeft[i], t.ChildrenRight[i]
		if left == LEAF {
			if right != LEAF {
				return fmt.Errorf("node %d has only one child", i)
			}
			if len(t.Value[i]) != 2 {
				return fmt.Errorf("leaf %d has %d class weights, expected 2", i, len(t.Value[i]))
			}
			continue
		}
		if left <= i || left >= n || right <= i || right >= n {
			return fmt.Errorf("node %d has out of order children %d/%d", i, left, right)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= nFeatures {
			return fmt.Errorf("node %d splits on feature %d of %d", i, t.Feature[i], nFeatures)
		}
	}
	return nil
}

// positiveProbability walks to the leaf for x. Inputs are compared at float32
// precision, matching how the trees were grown.
func (t *DecisionTree) positiveProbability(x []float64) float64 {
	node := 0
	for t.ChildrenLeft[node] != LEAF {
		if float64(float32(x[t.Feature[node]])) <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	v := t.Value[node]
	total := v[0] + v[1]
	if total <= 0 {
		return 0
	}
	return v[1] / total
}

// RandomForest averages the leaf class distributions of its trees.
type RandomForest struct {
	Name      string         `json:"-"`
	NFeatures int            `json:"n_features_in"`
	Trees     []DecisionTree `json:"trees"`
}

func (f *RandomForest) Validate() error {
	if f.NFeatures <= 0 {
		return invalidf("%s: n_features_in must be positive", f.Name)
	}
	if len(f.Trees) == 0 {
		return invalidf("%s: forest has no trees", f.Name)
	}
	for i := range f.Trees {
		if err := f.Trees[i].validate(f.NFeatures); err != nil {
			return invalidf("%s: tree %d: %v", f.Name, i, err)
		}
	}
	return nil
}

func (f *RandomForest) NumFeatures() int {
	return f.NFeatures
}

func (f *RandomForest) PredictPositiveProbability(x []float64) (float64, error) {
	if err := checkWidth(f.Name, x, f.NFeatures); err != nil {
		return 0, err
	}
	var sum float64
	for i := range f.Trees {
		sum += f.Trees[i].positiveProbability(x)
	}
	return sum / float64(len(f.Trees)), nil
}
