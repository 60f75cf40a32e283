package scoring

// Verdict summarizes which side of the ideal line a bucket (or a whole
// round) falls on.
type Verdict string

const (
	WellCalibrated Verdict = "well-calibrated"
	Overconfident  Verdict = "overconfident"
	Underconfident Verdict = "underconfident"
)

// DefaultTolerance is how far (as a fraction) accuracy may stray from the
// stated confidence before a bucket counts as miscalibrated.
const DefaultTolerance = 0.05

// BucketVerdict compares a bucket's accuracy with its stated confidence.
func BucketVerdict(b Bucket, tolerance float64) Verdict {
	return gapVerdict(b.Gap(), tolerance)
}

// OverallVerdict weighs every bucket's gap by its size. An empty table is
// reported as well calibrated.
func OverallVerdict(buckets []Bucket, tolerance float64) Verdict {
	var weighted float64
	total := 0
	for _, b := range buckets {
		weighted += b.Gap() * float64(b.Count)
		total += b.Count
	}
	if total == 0 {
		return WellCalibrated
	}
	return gapVerdict(weighted/float64(total), tolerance)
}

func gapVerdict(gap, tolerance float64) Verdict {
	switch {
	case gap < -tolerance:
		return Overconfident
	case gap > tolerance:
		return Underconfident
	default:
		return WellCalibrated
	}
}

// Description returns a one-line explanation suitable for display.
func (v Verdict) Description() string {
	switch v {
	case Overconfident:
		return "You were right less often than you claimed. Try lowering your confidence."
	case Underconfident:
		return "You were right more often than you claimed. You can afford to be bolder."
	default:
		return "Your stated confidence matched how often you were right."
	}
}
