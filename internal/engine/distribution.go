package engine

// DistributionBucket is one freshness range with its skill count.
type DistributionBucket struct {
	Range string  `json:"range"`
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Distribution buckets active skills into five 20-point freshness ranges.
// Skills that have never been practiced land in Untracked, never in 0-20:
// never-practiced is not the same thing as maximally decayed.
type Distribution struct {
	Buckets   []DistributionBucket `json:"buckets"`
	Untracked int                  `json:"untracked"`
}

// ComputeDistribution buckets the given summaries. Each bucket covers
// [low, high); the last one includes 100.
func ComputeDistribution(summaries []Summary) Distribution {
	d := Distribution{
		Buckets: []DistributionBucket{
			{Range: "0-20", Low: 0, High: 20},
			{Range: "20-40", Low: 20, High: 40},
			{Range: "40-60", Low: 40, High: 60},
			{Range: "60-80", Low: 60, High: 80},
			{Range: "80-100", Low: 80, High: 100},
		},
	}

	for _, s := range summaries {
		if s.Freshness == nil {
			d.Untracked++
			continue
		}
		f := *s.Freshness
		idx := int(f / 20)
		if idx >= len(d.Buckets) {
			idx = len(d.Buckets) - 1 // freshness == 100
		}
		d.Buckets[idx].Count++
	}
	return d
}
