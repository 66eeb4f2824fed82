// Package risk classifies a run's overall risk from its summary. It is a
// consumer of the rules engine output, not part of the annotation pipeline:
// it weights the tag histogram, normalizes to [0, 100], and buckets the
// result into Low / Medium / High.
package risk

import (
	"math"

	"github.com/boshu2/agentmri/internal/config"
	"github.com/boshu2/agentmri/internal/trace"
)

// Risk levels.
const (
	LevelLow    = "Low"
	LevelMedium = "Medium"
	LevelHigh   = "High"
)

// Bucket boundaries for the 0-100 score.
const (
	mediumThreshold = 30
	highThreshold   = 70
)

// Rating is the overall risk verdict for one run.
type Rating struct {
	Score int    `json:"score"`
	Level string `json:"level"`
}

// Classify computes the overall risk rating from a summary. Each histogram
// bucket contributes weight*count; the weighted sum is normalized by total
// step count, clamped to [0, 1], and scaled to 0-100. Tags without a
// configured weight use config.DefaultRiskWeight.
func Classify(summary trace.Summary, weights map[string]float64) Rating {
	total := summary.TotalSteps
	if total < 1 {
		total = 1
	}

	weighted := 0.0
	for tag, count := range summary.ByFailureType {
		w, ok := weights[tag]
		if !ok {
			w = config.DefaultRiskWeight
		}
		weighted += w * float64(count)
	}

	raw := weighted / float64(total)
	if raw < 0 {
		raw = 0
	}
	if raw > 1 {
		raw = 1
	}
	score := int(math.Round(raw * 100))

	return Rating{Score: score, Level: level(score)}
}

func level(score int) string {
	switch {
	case score < mediumThreshold:
		return LevelLow
	case score < highThreshold:
		return LevelMedium
	default:
		return LevelHigh
	}
}
