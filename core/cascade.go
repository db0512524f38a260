package viola

// Stage aggregates several weak classifiers behind a single vote
// threshold. A window passes the stage when the number of positive
// predictions reaches the threshold.
type Stage struct {
	Classifiers []WeakClassifier
	Threshold   float64
}

// Classify sums the binary predictions of the stage's classifiers and
// compares the vote count against the stage threshold.
func (st Stage) Classify(ii *IntegralImage) (bool, error) {
	votes := 0
	for _, wc := range st.Classifiers {
		p, err := wc.Predict(ii)
		if err != nil {
			return false, err
		}
		votes += p
	}
	return float64(votes) >= st.Threshold, nil
}

// Cascade chains stages so that cheap early stages reject most negative
// windows before the later, larger stages run.
type Cascade struct {
	stages []Stage
}

// NewCascade builds a detector from the given stages. A cascade with
// zero stages has no defined accept behavior and is rejected with
// ErrEmptyCascade.
func NewCascade(stages []Stage) (*Cascade, error) {
	if len(stages) == 0 {
		return nil, ErrEmptyCascade
	}
	c := &Cascade{stages: make([]Stage, len(stages))}
	copy(c.stages, stages)
	return c, nil
}

// NumStages returns the number of stages in the cascade.
func (c *Cascade) NumStages() int { return len(c.stages) }

// Detect builds one integral image for the sample and runs the staged
// classification over it.
func (c *Cascade) Detect(s *Sample) (bool, error) {
	ii, err := NewIntegralImage(s)
	if err != nil {
		return false, err
	}
	return c.DetectIntegral(ii)
}

// DetectIntegral evaluates the stages strictly in declaration order and
// short-circuits on the first failing stage; later stages are never
// touched once a stage rejects. It returns true only when every stage
// passes.
func (c *Cascade) DetectIntegral(ii *IntegralImage) (bool, error) {
	for _, st := range c.stages {
		pass, err := st.Classify(ii)
		if err != nil {
			return false, err
		}
		if !pass {
			return false, nil
		}
	}
	return true, nil
}
