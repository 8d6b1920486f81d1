package config

import "testing"

func TestDefaultsHardDifficulty(t *testing.T) {
	c := Defaults()
	if c.BotDifficulty != Hard {
		t.Errorf("BotDifficulty = %v, want Hard", c.BotDifficulty)
	}
	if !c.HardDeterministic {
		t.Error("expected HardDeterministic true by default")
	}
}

func TestFromEnvOverridesDifficulty(t *testing.T) {
	t.Setenv("HEARTS_BOT_DIFFICULTY", "Easy")
	c := FromEnv()
	if c.BotDifficulty != Easy {
		t.Errorf("BotDifficulty = %v, want Easy", c.BotDifficulty)
	}
}

func TestFromEnvClampsOutOfRangeFloat(t *testing.T) {
	t.Setenv("HEARTS_BELIEF_SOFT_QUEEN", "5.0")
	c := FromEnv()
	if c.BeliefSoftQueen != 1.0 {
		t.Errorf("BeliefSoftQueen = %v, want clamped to 1.0", c.BeliefSoftQueen)
	}
}

func TestFromEnvIgnoresMalformedInt(t *testing.T) {
	t.Setenv("HEARTS_HARD_TEST_STEPS", "not-a-number")
	c := FromEnv()
	if c.HardTestSteps != Defaults().HardTestSteps {
		t.Errorf("HardTestSteps = %v, want default %v", c.HardTestSteps, Defaults().HardTestSteps)
	}
}

func TestFromEnvParsesBool(t *testing.T) {
	t.Setenv("HEARTS_DEBUG_LOGS", "true")
	c := FromEnv()
	if !c.DebugLogs {
		t.Error("expected DebugLogs true")
	}
}

func TestDifficultyStringRoundTrip(t *testing.T) {
	for _, d := range []Difficulty{Easy, Normal, Hard} {
		if parseDifficulty(d.String()) != d {
			t.Errorf("parseDifficulty(%q) did not round-trip", d.String())
		}
	}
}
