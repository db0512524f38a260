package viola

import "fmt"

// WeakClassifier is a single-feature threshold rule. It predicts 1 when
// polarity*response < polarity*threshold and 0 otherwise. The polarity
// flips which side of the threshold counts as a positive prediction.
type WeakClassifier struct {
	Feature   Feature
	Threshold float64
	Polarity  int
}

// Predict classifies an integral image as 1 (positive) or 0 (negative).
func (wc WeakClassifier) Predict(ii *IntegralImage) (int, error) {
	resp, err := wc.Feature.Compute(ii)
	if err != nil {
		return 0, err
	}
	p := float64(wc.Polarity)
	if p*resp < p*wc.Threshold {
		return 1, nil
	}
	return 0, nil
}

// ThresholdRange describes the grid of threshold candidates the trainer
// searches: Steps evenly spaced points over [Min, Max], both endpoints
// included. The range is explicit configuration so callers can match it
// to their feature response domain.
type ThresholdRange struct {
	Min   float64
	Max   float64
	Steps int
}

// DefaultThresholdRange returns 10 points over [-1, 1].
func DefaultThresholdRange() ThresholdRange {
	return ThresholdRange{Min: -1, Max: 1, Steps: 10}
}

// values materializes the threshold candidates in ascending order.
func (tr ThresholdRange) values() ([]float64, error) {
	if tr.Steps < 1 {
		return nil, fmt.Errorf("viola: threshold range needs at least one step, got %d", tr.Steps)
	}
	if tr.Min > tr.Max {
		return nil, fmt.Errorf("viola: threshold range min %v above max %v", tr.Min, tr.Max)
	}
	if tr.Steps == 1 {
		return []float64{tr.Min}, nil
	}
	vals := make([]float64, tr.Steps)
	span := tr.Max - tr.Min
	for i := 0; i < tr.Steps; i++ {
		vals[i] = tr.Min + span*float64(i)/float64(tr.Steps-1)
	}
	return vals, nil
}

// TrainClassifier grid-searches the threshold candidates crossed with
// both polarities and returns the weak classifier over the given
// feature that classifies the most training samples correctly, together
// with its accuracy. Candidates are enumerated with polarity +1 before
// -1 and thresholds in ascending order; ties keep the first enumerated
// candidate.
func TrainClassifier(f Feature, pos, neg []*IntegralImage, rng ThresholdRange) (WeakClassifier, float64, error) {
	return TrainClassifierWeighted(f, pos, neg, nil, nil, rng)
}

// TrainClassifierWeighted is the boosting-step variant of
// TrainClassifier: the score of a candidate is the weighted sum of its
// correct classifications divided by the total weight. Nil weight
// slices mean uniform weights.
func TrainClassifierWeighted(f Feature, pos, neg []*IntegralImage, posW, negW []float64, rng ThresholdRange) (WeakClassifier, float64, error) {
	if len(pos) == 0 || len(neg) == 0 {
		return WeakClassifier{}, 0, ErrEmptyTrainingSet
	}
	if posW == nil {
		posW = uniformWeights(len(pos))
	}
	if negW == nil {
		negW = uniformWeights(len(neg))
	}
	if len(posW) != len(pos) || len(negW) != len(neg) {
		return WeakClassifier{}, 0, fmt.Errorf("viola: weight vector length mismatch: %w", ErrInvalidDimensions)
	}

	thresholds, err := rng.values()
	if err != nil {
		return WeakClassifier{}, 0, err
	}

	// Feature responses do not depend on the candidate, so compute
	// them once per sample.
	posResp, err := responses(f, pos)
	if err != nil {
		return WeakClassifier{}, 0, err
	}
	negResp, err := responses(f, neg)
	if err != nil {
		return WeakClassifier{}, 0, err
	}

	var total float64
	for _, w := range posW {
		total += w
	}
	for _, w := range negW {
		total += w
	}

	best := WeakClassifier{}
	bestScore := -1.0

	for _, polarity := range []int{1, -1} {
		p := float64(polarity)
		for _, threshold := range thresholds {
			var correct float64
			for i, resp := range posResp {
				if p*resp < p*threshold {
					correct += posW[i]
				}
			}
			for i, resp := range negResp {
				if p*resp >= p*threshold {
					correct += negW[i]
				}
			}
			score := correct / total
			if score > bestScore {
				bestScore = score
				best = WeakClassifier{Feature: f, Threshold: threshold, Polarity: polarity}
			}
		}
	}
	return best, bestScore, nil
}

func responses(f Feature, samples []*IntegralImage) ([]float64, error) {
	resp := make([]float64, len(samples))
	for i, ii := range samples {
		r, err := f.Compute(ii)
		if err != nil {
			return nil, err
		}
		resp[i] = r
	}
	return resp, nil
}

func uniformWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1.0 / float64(n)
	}
	return w
}
