// Package moon estimates how likely a seat is to shoot the moon from
// its hand's features, and selects the resulting strategic objective.
package moon

import (
	"math"

	"github.com/0x4D44/mdhearts-sub001/internal/cards"
	"github.com/0x4D44/mdhearts-sub001/internal/passing"
)

// EstimatorConfig is the logistic regression's tunable coefficients.
// config.Config has no fields for them; callers pass DefaultConfig or
// a value they build themselves.
type EstimatorConfig struct {
	Intercept           float64
	HeartsWeight        float64
	HighHeartsWeight    float64
	VoidWeight          float64
	QueenGuardWeight    float64
	PenaltyMassWeight   float64
	ScorePressureWeight float64
	DirectionWeight     float64
	BlockThreshold      float64
}

// DefaultConfig matches the estimator's long-standing defaults.
func DefaultConfig() EstimatorConfig {
	return EstimatorConfig{
		Intercept:           -1.35,
		HeartsWeight:        0.18,
		HighHeartsWeight:    0.42,
		VoidWeight:          -0.28,
		QueenGuardWeight:    -0.6,
		PenaltyMassWeight:   -0.04,
		ScorePressureWeight: 0.12,
		DirectionWeight:     0.25,
		BlockThreshold:      0.45,
	}
}

// Estimator scores a hand's shoot-the-moon likelihood.
type Estimator struct {
	cfg EstimatorConfig
}

// New builds an estimator from the given coefficients.
func New(cfg EstimatorConfig) *Estimator { return &Estimator{cfg: cfg} }

// Features are the seven inputs to the logistic regression, computed
// at the moment of decision from a hand, the scoreboard, and the
// round's passing direction.
type Features struct {
	HeartsInHand    float64
	HighHearts      float64
	Voids           float64
	QueenGuard      float64
	PenaltyMass     float64
	ScorePressure   float64
	DirectionFactor float64
}

// Objective is the strategic posture implied by an estimate.
type Objective int

const (
	MyPointsPerHand Objective = iota
	BlockShooter
)

func (o Objective) String() string {
	if o == BlockShooter {
		return "BlockShooter"
	}
	return "MyPointsPerHand"
}

// Estimate is the scored result of one estimator call.
type Estimate struct {
	Probability float64
	RawScore    float64
	Objective   Objective
}

// DefensiveUrgency equals the shoot probability; it feeds the pass
// and play planners' defensive weighting.
func (e Estimate) DefensiveUrgency() float64 { return e.Probability }

// Estimate scores the given features and selects an objective by
// comparing the resulting probability to the configured threshold.
func (est *Estimator) Estimate(f Features) Estimate {
	c := est.cfg
	linear := c.Intercept
	linear += f.HeartsInHand * c.HeartsWeight
	linear += f.HighHearts * c.HighHeartsWeight
	linear += f.Voids * c.VoidWeight
	linear += f.QueenGuard * c.QueenGuardWeight
	linear += f.PenaltyMass * c.PenaltyMassWeight
	linear += f.ScorePressure * c.ScorePressureWeight
	linear += f.DirectionFactor * c.DirectionWeight

	prob := sigmoid(linear)
	objective := MyPointsPerHand
	if prob >= c.BlockThreshold {
		objective = BlockShooter
	}
	return Estimate{Probability: prob, RawScore: linear, Objective: objective}
}

func sigmoid(v float64) float64 {
	return 1.0 / (1.0 + math.Exp(-v))
}

// FeaturesFromHand computes a seat's moon features from its current
// hand, the scoreboard standings, and the round's passing direction.
func FeaturesFromHand(hand *cards.Hand, myScore, minScore int, direction passing.Direction) Features {
	hearts := hand.CardsOfSuit(cards.Hearts)
	highHearts := 0
	for _, c := range hearts {
		if c.Rank >= cards.Queen {
			highHearts++
		}
	}
	voids := 0
	for _, s := range cards.AllSuits {
		if hand.SuitCount(s) == 0 {
			voids++
		}
	}
	queenGuard := 0.0
	if hand.Contains(cards.QueenOfSpades) {
		queenGuard = 1
	}
	pressure := float64(myScore-minScore) / 26.0
	if pressure < -2.0 {
		pressure = -2.0
	}
	if pressure > 4.0 {
		pressure = 4.0
	}
	return Features{
		HeartsInHand:    float64(len(hearts)),
		HighHearts:      float64(highHearts),
		Voids:           float64(voids),
		QueenGuard:      queenGuard,
		PenaltyMass:     float64(hand.PenaltyTotal()) / 26.0,
		ScorePressure:   pressure,
		DirectionFactor: directionBias(direction),
	}
}

// directionBias gives Right/Across a slightly higher moon-shot prior
// than Left/Hold, matching how often each direction's exchange tends
// to concentrate penalty cards in a single hand.
func directionBias(d passing.Direction) float64 {
	switch d {
	case passing.Left:
		return 0.05
	case passing.Right:
		return 0.22
	case passing.Across:
		return 0.18
	case passing.Hold:
		return 0.03
	default:
		return 0.05
	}
}
