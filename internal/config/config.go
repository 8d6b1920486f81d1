// Package config loads the Hard planner's tunable parameters, the
// bot difficulty, and telemetry verbosity from the environment. A
// Config is immutable once built: every env var is parsed, clamped,
// and defaulted exactly once at startup.
package config

import (
	"os"
	"strconv"
)

// Difficulty selects which planner a decision request uses.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Normal:
		return "Normal"
	case Hard:
		return "Hard"
	default:
		return "Unknown"
	}
}

func parseDifficulty(s string) Difficulty {
	switch s {
	case "Easy", "easy":
		return Easy
	case "Hard", "hard":
		return Hard
	default:
		return Normal
	}
}

// Config is every environment-driven parameter the planners and
// telemetry consult. Construct with FromEnv or Defaults; there is no
// setter, and planners receive it by value.
type Config struct {
	BotDifficulty Difficulty

	HardDeterministic bool
	HardTestSteps     int
	HardPhaseBTopK    int
	HardBranchLimit   int
	HardNextBranchLimit int
	HardABMargin        float64
	HardProbeABMargin   float64
	HardContCap         float64

	HardContFeedPerPen        float64
	HardContSelfCapturePerPen float64
	HardNext2FeedPerPen       float64
	HardNext2SelfCapturePerPen float64
	HardNextTrickSingleton    float64
	HardQSRiskPerUnseen       float64
	HardQSRiskCap             float64
	HardCtrlHeartsPerCard     float64
	HardCtrlHandoffBonus      float64
	HardMoonReliefPerPen      float64
	HardWidePermilBoostLead   float64
	HardWidePermilBoostFollow float64

	HardEndgameDPEnable  bool
	HardEndgameMaxCards  int

	HardDetEnable        bool
	HardDetSampleK       int
	HardDetProbeWideLike bool
	HardDetNext3Enable   bool

	HardPlannerLeaderFeedNudge   float64
	HardPlannerMaxBaseForNudge   float64
	HardPlannerNudgeNear100      float64
	HardPlannerNudgeGapMin       float64

	BeliefSoftQueen  float64
	BeliefSoftSlough float64
	BeliefSoftMin    float64

	MoonDetails bool
	PassDetails bool
	DebugLogs   bool
}

// Defaults returns the long-standing hand-tuned parameter set used
// when no environment override is present.
func Defaults() Config {
	return Config{
		BotDifficulty: Hard,

		HardDeterministic:   true,
		HardTestSteps:       4000,
		HardPhaseBTopK:      6,
		HardBranchLimit:     8,
		HardNextBranchLimit: 4,
		HardABMargin:        0.75,
		HardProbeABMargin:   0.50,
		HardContCap:         6.0,

		HardContFeedPerPen:         0.30,
		HardContSelfCapturePerPen:  -0.45,
		HardNext2FeedPerPen:        0.18,
		HardNext2SelfCapturePerPen: -0.22,
		HardNextTrickSingleton:     0.35,
		HardQSRiskPerUnseen:        -0.12,
		HardQSRiskCap:              -1.0,
		HardCtrlHeartsPerCard:      0.08,
		HardCtrlHandoffBonus:       0.40,
		HardMoonReliefPerPen:       0.25,
		HardWidePermilBoostLead:    50,
		HardWidePermilBoostFollow:  25,

		HardEndgameDPEnable: true,
		HardEndgameMaxCards: 6,

		HardDetEnable:        false,
		HardDetSampleK:       16,
		HardDetProbeWideLike: false,
		HardDetNext3Enable:   false,

		HardPlannerLeaderFeedNudge: 0.20,
		HardPlannerMaxBaseForNudge: 2.0,
		HardPlannerNudgeNear100:    0.15,
		HardPlannerNudgeGapMin:     0.05,

		BeliefSoftQueen:  0.65,
		BeliefSoftSlough: 1.15,
		BeliefSoftMin:    0.10,

		MoonDetails: false,
		PassDetails: false,
		DebugLogs:   false,
	}
}

// clampedParam describes one float64 field's env key and valid range,
// for uniform parse/clamp handling in FromEnv.
type clampedParam struct {
	Key string
	Ptr *float64
	Min float64
	Max float64
}

func (c *Config) floatParams() []clampedParam {
	return []clampedParam{
		{"HEARTS_HARD_AB_MARGIN", &c.HardABMargin, 0, 5},
		{"HEARTS_HARD_PROBE_AB_MARGIN", &c.HardProbeABMargin, 0, 5},
		{"HEARTS_HARD_CONT_CAP", &c.HardContCap, 0, 20},
		{"HEARTS_HARD_CONT_FEED_PERPEN", &c.HardContFeedPerPen, -5, 5},
		{"HEARTS_HARD_CONT_SELF_CAPTURE_PERPEN", &c.HardContSelfCapturePerPen, -5, 5},
		{"HEARTS_HARD_NEXT2_FEED_PERPEN", &c.HardNext2FeedPerPen, -5, 5},
		{"HEARTS_HARD_NEXT2_SELF_CAPTURE_PERPEN", &c.HardNext2SelfCapturePerPen, -5, 5},
		{"HEARTS_HARD_NEXTTRICK_SINGLETON", &c.HardNextTrickSingleton, -5, 5},
		{"HEARTS_HARD_QS_RISK_PERUNSEEN", &c.HardQSRiskPerUnseen, -5, 5},
		{"HEARTS_HARD_QS_RISK_CAP", &c.HardQSRiskCap, -10, 0},
		{"HEARTS_HARD_CTRL_HEARTS_PERCARD", &c.HardCtrlHeartsPerCard, -5, 5},
		{"HEARTS_HARD_CTRL_HANDOFF_BONUS", &c.HardCtrlHandoffBonus, -5, 5},
		{"HEARTS_HARD_MOON_RELIEF_PERPEN", &c.HardMoonReliefPerPen, -5, 5},
		{"HEARTS_HARD_WIDE_PERMIL_BOOST_LEAD", &c.HardWidePermilBoostLead, 0, 1000},
		{"HEARTS_HARD_WIDE_PERMIL_BOOST_FOLLOW", &c.HardWidePermilBoostFollow, 0, 1000},
		{"HEARTS_HARD_PLANNER_LEADER_FEED_NUDGE", &c.HardPlannerLeaderFeedNudge, -2, 2},
		{"HEARTS_HARD_PLANNER_MAX_BASE_FOR_NUDGE", &c.HardPlannerMaxBaseForNudge, 0, 10},
		{"HEARTS_HARD_PLANNER_NUDGE_NEAR100", &c.HardPlannerNudgeNear100, 0, 1},
		{"HEARTS_HARD_PLANNER_NUDGE_GAP_MIN", &c.HardPlannerNudgeGapMin, 0, 1},
		{"HEARTS_BELIEF_SOFT_QUEEN", &c.BeliefSoftQueen, 0, 1},
		{"HEARTS_BELIEF_SOFT_SLOUGH", &c.BeliefSoftSlough, 1, 3},
		{"HEARTS_BELIEF_SOFT_MIN", &c.BeliefSoftMin, 0, 1},
	}
}

// FromEnv builds a Config starting from Defaults and overriding each
// field present in the environment. Out-of-range float values are
// clamped to their valid interval rather than rejected, without any
// log record of the clamp; malformed integers/booleans fall back to
// the default for that field.
func FromEnv() Config {
	c := Defaults()

	if v := os.Getenv("HEARTS_BOT_DIFFICULTY"); v != "" {
		c.BotDifficulty = parseDifficulty(v)
	}
	c.HardDeterministic = envBool("HEARTS_HARD_DETERMINISTIC", c.HardDeterministic)
	c.HardTestSteps = envInt("HEARTS_HARD_TEST_STEPS", c.HardTestSteps)
	c.HardPhaseBTopK = envInt("HEARTS_HARD_PHASEB_TOPK", c.HardPhaseBTopK)
	c.HardBranchLimit = envInt("HEARTS_HARD_BRANCH_LIMIT", c.HardBranchLimit)
	c.HardNextBranchLimit = envInt("HEARTS_HARD_NEXT_BRANCH_LIMIT", c.HardNextBranchLimit)
	c.HardEndgameDPEnable = envBool("HEARTS_HARD_ENDGAME_DP_ENABLE", c.HardEndgameDPEnable)
	c.HardEndgameMaxCards = envInt("HEARTS_HARD_ENDGAME_MAX_CARDS", c.HardEndgameMaxCards)
	c.HardDetEnable = envBool("HEARTS_HARD_DET_ENABLE", c.HardDetEnable)
	c.HardDetSampleK = envInt("HEARTS_HARD_DET_SAMPLE_K", c.HardDetSampleK)
	c.HardDetProbeWideLike = envBool("HEARTS_HARD_DET_PROBE_WIDE_LIKE", c.HardDetProbeWideLike)
	c.HardDetNext3Enable = envBool("HEARTS_HARD_DET_NEXT3_ENABLE", c.HardDetNext3Enable)
	c.MoonDetails = envBool("HEARTS_MOON_DETAILS", c.MoonDetails)
	c.PassDetails = envBool("HEARTS_PASS_DETAILS", c.PassDetails)
	c.DebugLogs = envBool("HEARTS_DEBUG_LOGS", c.DebugLogs)

	for _, p := range c.floatParams() {
		if v, ok := envFloat(p.Key); ok {
			*p.Ptr = clamp(v, p.Min, p.Max)
		}
	}
	return c
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string) (float64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
