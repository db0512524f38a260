package viola

import (
	"errors"
	"math"
	"runtime"
	"sync"
)

// candidate is the outcome of training one feature of the pool.
type candidate struct {
	wc    WeakClassifier
	score float64
	err   error
}

// TrainStage runs a boosting-style selection over the feature pool:
// each round it trains a weak classifier per feature against the
// current sample weights, keeps the best one and re-emphasizes the
// samples it got wrong. The returned stage passes a window when at
// least half of the selected classifiers vote for it.
//
// The weight update is multiplicative: after each round the weights of
// correctly classified samples are scaled by beta = err/(1-err),
// misclassified weights are kept, and the whole vector is renormalized
// to sum 1. Misclassified samples therefore never lose weight relative
// to correctly classified ones.
func TrainStage(pool []Feature, pos, neg []*Sample, rounds int, rng ThresholdRange) (Stage, error) {
	posII, negII, err := integralSets(pos, neg)
	if err != nil {
		return Stage{}, err
	}
	return trainStage(pool, posII, negII, rounds, rng)
}

func trainStage(pool []Feature, posII, negII []*IntegralImage, rounds int, rng ThresholdRange) (Stage, error) {
	if len(pool) == 0 {
		return Stage{}, errors.New("viola: empty feature pool")
	}
	if len(posII) == 0 || len(negII) == 0 {
		return Stage{}, ErrEmptyTrainingSet
	}
	if rounds < 1 {
		rounds = 1
	}

	n := len(posII) + len(negII)
	posW := make([]float64, len(posII))
	negW := make([]float64, len(negII))
	for i := range posW {
		posW[i] = 1.0 / float64(n)
	}
	for i := range negW {
		negW[i] = 1.0 / float64(n)
	}

	var classifiers []WeakClassifier
	for round := 0; round < rounds; round++ {
		best, err := searchPool(pool, posII, negII, posW, negW, rng)
		if err != nil {
			return Stage{}, err
		}
		classifiers = append(classifiers, best.wc)

		werr := 1 - best.score
		if werr <= 0 {
			// The classifier separates the weighted set perfectly;
			// further rounds would pick the same one.
			break
		}
		beta := werr / (1 - werr)
		if beta > 1 {
			// The polarity search keeps weighted error at or below one
			// half, but guard against degenerate pools anyway.
			beta = 1
		}
		reweight(best.wc, posII, negII, posW, negW, beta)
	}

	return Stage{
		Classifiers: classifiers,
		Threshold:   float64(len(classifiers)) / 2,
	}, nil
}

// searchPool trains every feature of the pool against the current
// weights and returns the best candidate. The search fans out over a
// worker pool; the winner is picked by scanning results in pool order,
// so ties resolve to the first enumerated feature regardless of
// scheduling.
func searchPool(pool []Feature, posII, negII []*IntegralImage, posW, negW []float64, rng ThresholdRange) (candidate, error) {
	results := make([]candidate, len(pool))
	jobs := make(chan int)

	var wg sync.WaitGroup
	workers := runtime.NumCPU()
	if workers > len(pool) {
		workers = len(pool)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				wc, score, err := TrainClassifierWeighted(pool[i], posII, negII, posW, negW, rng)
				results[i] = candidate{wc: wc, score: score, err: err}
			}
		}()
	}
	for i := range pool {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	best := candidate{score: -1}
	for _, r := range results {
		if r.err != nil {
			return candidate{}, r.err
		}
		if r.score > best.score {
			best = r
		}
	}
	return best, nil
}

// reweight scales the weights of correctly classified samples by beta
// and renormalizes the full vector to sum 1.
func reweight(wc WeakClassifier, posII, negII []*IntegralImage, posW, negW []float64, beta float64) {
	for i, ii := range posII {
		if p, err := wc.Predict(ii); err == nil && p == 1 {
			posW[i] *= beta
		}
	}
	for i, ii := range negII {
		if p, err := wc.Predict(ii); err == nil && p == 0 {
			negW[i] *= beta
		}
	}

	var sum float64
	for _, w := range posW {
		sum += w
	}
	for _, w := range negW {
		sum += w
	}
	if sum <= 0 || math.IsNaN(sum) {
		return
	}
	for i := range posW {
		posW[i] /= sum
	}
	for i := range negW {
		negW[i] /= sum
	}
}

// TrainCascade chains stage training into a cascade. Each stage is
// trained against the negatives every previous stage still accepts, so
// later stages focus on the harder false positives. Training stops
// early when no negatives survive; at least one stage is always
// produced.
func TrainCascade(pool []Feature, pos, neg []*Sample, numStages, rounds int, rng ThresholdRange) (*Cascade, error) {
	if numStages < 1 {
		numStages = 1
	}
	posII, negII, err := integralSets(pos, neg)
	if err != nil {
		return nil, err
	}

	var stages []Stage
	for s := 0; s < numStages; s++ {
		st, err := trainStage(pool, posII, negII, rounds, rng)
		if err != nil {
			return nil, err
		}
		stages = append(stages, st)

		// Keep only the negatives this stage still lets through.
		var survivors []*IntegralImage
		for _, ii := range negII {
			pass, err := st.Classify(ii)
			if err != nil {
				return nil, err
			}
			if pass {
				survivors = append(survivors, ii)
			}
		}
		if len(survivors) == 0 {
			break
		}
		negII = survivors
	}
	return NewCascade(stages)
}

func integralSets(pos, neg []*Sample) ([]*IntegralImage, []*IntegralImage, error) {
	if len(pos) == 0 || len(neg) == 0 {
		return nil, nil, ErrEmptyTrainingSet
	}
	posII := make([]*IntegralImage, len(pos))
	negII := make([]*IntegralImage, len(neg))
	for i, s := range pos {
		ii, err := NewIntegralImage(s)
		if err != nil {
			return nil, nil, err
		}
		posII[i] = ii
	}
	for i, s := range neg {
		ii, err := NewIntegralImage(s)
		if err != nil {
			return nil, nil, err
		}
		negII[i] = ii
	}
	return posII, negII, nil
}
