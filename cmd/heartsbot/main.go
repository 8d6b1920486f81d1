// Command heartsbot is the decision core's external interface: a
// thin CLI that loads configuration from the environment, reads a
// snapshot file, and prints the chosen card (or pass) and why.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/0x4D44/mdhearts-sub001/internal/belief"
	"github.com/0x4D44/mdhearts-sub001/internal/cards"
	"github.com/0x4D44/mdhearts-sub001/internal/config"
	"github.com/0x4D44/mdhearts-sub001/internal/moon"
	"github.com/0x4D44/mdhearts-sub001/internal/passing"
	"github.com/0x4D44/mdhearts-sub001/internal/planner/hard"
	"github.com/0x4D44/mdhearts-sub001/internal/planner/normal"
	"github.com/0x4D44/mdhearts-sub001/internal/planner/pass"
	"github.com/0x4D44/mdhearts-sub001/internal/round"
	"github.com/0x4D44/mdhearts-sub001/internal/scoreboard"
	"github.com/0x4D44/mdhearts-sub001/internal/snapshot"
	"github.com/0x4D44/mdhearts-sub001/internal/style"
	"github.com/0x4D44/mdhearts-sub001/internal/telemetry"
	"github.com/0x4D44/mdhearts-sub001/internal/tracker"
	"github.com/0x4D44/mdhearts-sub001/internal/trick"
)

func main() {
	app := &cli.App{
		Name:    "heartsbot",
		Usage:   "Decide a Hearts pass or play from a snapshot file",
		Version: "0.1.0",
		Commands: []*cli.Command{
			{
				Name:   "decide",
				Usage:  "Choose a card to play, or a triple to pass, and explain why",
				Action: decideAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "snapshot", Required: true, Usage: "path to an endgame snapshot JSON file"},
					&cli.IntFlag{Name: "seat", Required: true, Usage: "acting seat (0-3)"},
					&cli.StringFlag{Name: "mode", Value: "play", Usage: "play|pass"},
					&cli.StringFlag{Name: "direction", Usage: "pass direction (Left|Right|Across|Hold); required for mode=pass"},
					&cli.StringFlag{Name: "scores", Value: "0,0,0,0", Usage: "comma-separated cumulative scores for seats 0-3"},
					&cli.StringFlag{Name: "difficulty", Usage: "override bot_difficulty (Easy|Normal|Hard)"},
					&cli.BoolFlag{Name: "verbose", Usage: "show the Hard planner's full parts breakdown"},
				},
			},
			{
				Name:    "rules",
				Aliases: []string{"r"},
				Usage:   "Display Hearts rules",
				Action:  showRules,
				Subcommands: []*cli.Command{
					{Name: "passing", Usage: "Show the passing cycle", Action: showPassingRules},
					{Name: "scoring", Usage: "Show scoring and shoot-the-moon rules", Action: showScoringRules},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func decideAction(c *cli.Context) error {
	cfg := config.FromEnv()
	if d := c.String("difficulty"); d != "" {
		diff, ok := parseDifficultyFlag(d)
		if !ok {
			return fmt.Errorf("unknown difficulty %q", d)
		}
		cfg.BotDifficulty = diff
	}

	seat := c.Int("seat")
	if seat < 0 || seat > 3 {
		return fmt.Errorf("seat must be 0-3, got %d", seat)
	}

	raw, err := os.ReadFile(c.String("snapshot"))
	if err != nil {
		return err
	}
	var snap snapshot.EndgameSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return err
	}
	hands, tr, trk, err := snapshot.RestoreEndgame(snap)
	if err != nil {
		return err
	}

	scores, err := parseScores(c.String("scores"))
	if err != nil {
		return err
	}
	sb := scoreboard.FromTotals(scores)
	logger := telemetry.NewLogger(cfg.DebugLogs)

	switch c.String("mode") {
	case "play":
		return decidePlay(c, cfg, logger, seat, hands, tr, trk, snap, sb)
	case "pass":
		return decidePass(c, cfg, seat, hands, trk, sb)
	default:
		return fmt.Errorf("unknown mode %q, want play or pass", c.String("mode"))
	}
}

func decidePlay(
	c *cli.Context,
	cfg config.Config,
	logger zerolog.Logger,
	seat int,
	hands [4]*cards.Hand,
	tr *trick.Trick,
	trk *tracker.UnseenTracker,
	snap snapshot.EndgameSnapshot,
	sb *scoreboard.Scoreboard,
) error {
	firstTrick := snap.CompletedTricks == 0
	legal := round.LegalMovesFor(hands[seat], tr, firstTrick, snap.HeartsBroken)
	if len(legal) == 0 {
		telemetry.LogFallbackEmptyLegal(logger, seat)
		fallback := hands[seat].Cards()[0]
		fmt.Printf("fallback_empty_legal: chosen %s\n", fallback)
		return nil
	}

	cardsPlayed := snap.CompletedTricks*4 + tr.Size()
	hearts, highHearts, highSpades, hasAceSpades := style.InputsFromHand(hands[seat])
	styleIn := style.Inputs{
		MoonState:         trk.MoonState(seat),
		CardsPlayed:       cardsPlayed,
		MyScore:           sb.Total(seat),
		MinScore:          sb.MinScore(),
		HeartsInHand:      hearts,
		HighHeartsInHand:  highHearts,
		HighSpadesInHand:  highSpades,
		HasAceOfSpades:    hasAceSpades,
		IsHighestScore:    sb.HighestScoreSeat() == seat,
		HardDifficulty:    cfg.BotDifficulty == config.Hard,
		HuntThresholdAny:  style.DefaultHuntThresholdAny,
		HuntThresholdHard: style.DefaultHuntThresholdHard,
	}
	chosenStyle := style.Select(styleIn)

	switch cfg.BotDifficulty {
	case config.Easy:
		chosen := weakestCard(legal)
		fmt.Printf("style=%s planner=Easy chosen=%s\n", chosenStyle, chosen)
		return nil
	case config.Hard:
		ctx := hard.Context{
			Seat:          seat,
			Hand:          hands[seat],
			Trick:         tr,
			HeartsBroken:  snap.HeartsBroken,
			Scoreboard:    sb,
			Tracker:       trk,
			Belief:        buildBelief(cfg, seat, hands, tr, trk),
			Style:         chosenStyle,
			MoonState:     trk.MoonState(seat),
			NormalWeights: normal.DefaultWeights(),
			Config:        cfg,
			AllHands:      hands,
		}
		result := hard.Select(ctx, legal)
		fmt.Printf("style=%s planner=Hard chosen=%s\n", chosenStyle, result.Chosen)
		printHardTable(result, c.Bool("verbose"))
		fmt.Printf("steps=%d/%d dp_ran=%v dp_cache_hits=%d nudge_fired=%v\n",
			result.Stats.StepsUsed, result.Stats.StepsCap, result.Stats.DPRan, result.Stats.DPCacheHits, result.Stats.NudgeFired)
		return nil
	default:
		ctx := normal.Context{
			Seat:         seat,
			Hand:         hands[seat],
			Trick:        tr,
			HeartsBroken: snap.HeartsBroken,
			Scoreboard:   sb,
			Style:        chosenStyle,
			Weights:      normal.DefaultWeights(),
		}
		chosen := normal.Select(ctx, legal)
		fmt.Printf("style=%s planner=Normal chosen=%s\n", chosenStyle, chosen)
		printNormalTable(ctx, legal)
		return nil
	}
}

func decidePass(
	c *cli.Context,
	cfg config.Config,
	seat int,
	hands [4]*cards.Hand,
	trk *tracker.UnseenTracker,
	sb *scoreboard.Scoreboard,
) error {
	dirToken := c.String("direction")
	if dirToken == "" {
		return fmt.Errorf("mode=pass requires --direction")
	}
	dir, ok := passing.ParseDirection(dirToken)
	if !ok {
		return fmt.Errorf("unknown direction %q", dirToken)
	}
	if dir == passing.Hold {
		return fmt.Errorf("Hold does not pass")
	}

	myScore, minScore := sb.Total(seat), sb.MinScore()
	est := moon.New(moon.DefaultConfig()).Estimate(moon.FeaturesFromHand(hands[seat], myScore, minScore, dir))

	hearts, highHearts, highSpades, hasAceSpades := style.InputsFromHand(hands[seat])
	chosenStyle := style.Select(style.Inputs{
		MoonState:         trk.MoonState(seat),
		MyScore:           myScore,
		MinScore:          minScore,
		HeartsInHand:      hearts,
		HighHeartsInHand:  highHearts,
		HighSpadesInHand:  highSpades,
		HasAceOfSpades:    hasAceSpades,
		IsHighestScore:    sb.HighestScoreSeat() == seat,
		HardDifficulty:    cfg.BotDifficulty == config.Hard,
		HuntThresholdAny:  style.DefaultHuntThresholdAny,
		HuntThresholdHard: style.DefaultHuntThresholdHard,
	})

	ctx := pass.Context{
		Seat:         seat,
		Hand:         hands[seat],
		Direction:    dir,
		Scoreboard:   sb,
		Tracker:      trk,
		Belief:       buildBelief(cfg, seat, hands, nil, trk),
		MoonEstimate: est,
		Style:        chosenStyle,
		Weights:      pass.DefaultWeights(),
	}
	picked, err := pass.Select(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("style=%s direction=%s pass=%s,%s,%s\n", chosenStyle, dir, picked[0], picked[1], picked[2])
	return nil
}

// buildBelief constructs seat's probabilistic ownership table from
// exactly the information a real seat would have: its own exact hand,
// every other seat's known remaining card count, the cards already
// revealed by tracker.UnseenTracker (tricks completed before this
// snapshot was captured) and by the trick in progress, and the
// tracker's recorded voids. It then replays the trick in progress
// through the soft queen-avoidance/penalty-slough updates, in seat
// order, before the planner consults it. tr may be nil during the
// passing phase, when there is no trick yet to replay.
func buildBelief(cfg config.Config, seat int, hands [4]*cards.Hand, tr *trick.Trick, trk *tracker.UnseenTracker) *belief.Belief {
	var handSizes [4]int
	for s := range hands {
		handSizes[s] = hands[s].Size()
	}

	var revealed []cards.Card
	for _, c := range cards.AllCards() {
		if !trk.IsUnseen(c) {
			revealed = append(revealed, c)
		}
	}
	var leadSuit cards.Suit
	var plays []trick.Play
	if tr != nil && !tr.IsEmpty() {
		leadSuit = tr.LeadSuit()
		plays = tr.Plays()
		for _, p := range plays {
			revealed = append(revealed, p.Card)
		}
	}

	bel := belief.New(seat, hands[seat].Cards(), revealed, handSizes)
	bel.SetSoftFactors(cfg.BeliefSoftQueen, cfg.BeliefSoftSlough, cfg.BeliefSoftMin)

	for s := 0; s < 4; s++ {
		if s == seat {
			continue
		}
		for _, su := range cards.AllSuits {
			if trk.IsVoid(s, su) {
				bel.NoteVoid(s, su)
			}
		}
	}

	for _, p := range plays {
		if p.Seat == seat {
			continue
		}
		offSuit := p.Card.Suit != leadSuit
		bel.ApplyQueenAvoidance(p.Seat, leadSuit, p.Card, handSizes[p.Seat])
		bel.ApplyPenaltySlough(p.Seat, offSuit, p.Card, handSizes[p.Seat])
	}

	return bel
}

func weakestCard(legal []cards.Card) cards.Card {
	weakest := legal[0]
	for _, c := range legal[1:] {
		if c.Less(weakest) {
			weakest = c
		}
	}
	return weakest
}

func parseDifficultyFlag(s string) (config.Difficulty, bool) {
	switch strings.ToLower(s) {
	case "easy":
		return config.Easy, true
	case "normal":
		return config.Normal, true
	case "hard":
		return config.Hard, true
	default:
		return config.Normal, false
	}
}

func parseScores(s string) ([4]int, error) {
	var out [4]int
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return out, fmt.Errorf("scores must have 4 comma-separated values, got %q", s)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return out, fmt.Errorf("invalid score %q: %w", p, err)
		}
		out[i] = n
	}
	return out, nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3498DB"))
	redSuit     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))
	darkSuit    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2C3E50"))
)

// styledCard renders a card with the conventional red-for-hearts/diamonds,
// dark-for-clubs/spades coloring.
func styledCard(c cards.Card) string {
	if c.Suit == cards.Hearts || c.Suit == cards.Diamonds {
		return redSuit.Render(c.String())
	}
	return darkSuit.Render(c.String())
}

func printNormalTable(ctx normal.Context, legal []cards.Card) {
	type row struct {
		card  cards.Card
		score float64
	}
	rows := make([]row, len(legal))
	for i, c := range legal {
		rows[i] = row{c, normal.BaseScore(ctx, c)}
	}
	fmt.Println(headerStyle.Render(fmt.Sprintf("%-8s %s", "card", "base_score")))
	for _, r := range rows {
		fmt.Printf("%-17s %.3f\n", styledCard(r.card), r.score)
	}
}

func printHardTable(result hard.Result, verbose bool) {
	if verbose {
		fmt.Println(headerStyle.Render(fmt.Sprintf("%-8s %-6s %-6s %-6s %s", "card", "base", "total", "probed", "parts")))
	} else {
		fmt.Println(headerStyle.Render(fmt.Sprintf("%-8s %-6s %-6s %s", "card", "base", "total", "probed")))
	}
	for _, cand := range result.Candidates {
		if verbose {
			fmt.Printf("%-17s %6.2f %6.2f %-6v feed=%.2f self_capture=%.2f next_start=%.2f next_probe=%.2f qs_risk=%.2f ctrl_hearts=%.2f ctrl_handoff=%.2f moon_relief=%.2f capped_delta=%.2f\n",
				styledCard(cand.Card), cand.Base, cand.Total, cand.Probed,
				cand.Parts.Feed, cand.Parts.SelfCapture, cand.Parts.NextStart, cand.Parts.NextProbe,
				cand.Parts.QSRisk, cand.Parts.CtrlHearts, cand.Parts.CtrlHandoff, cand.Parts.MoonRelief, cand.Parts.CappedDelta)
		} else {
			fmt.Printf("%-17s %6.2f %6.2f %v\n", styledCard(cand.Card), cand.Base, cand.Total, cand.Probed)
		}
	}
}

func showRules(c *cli.Context) error {
	fmt.Print(`
HEARTS RULES
============

Hearts is a trick-taking card game for four players, each for
themselves. Low score wins.

THE DECK
--------
Standard 52-card deck, 13 cards per seat.

PASSING
-------
Before the first trick, each seat passes three cards: Left, Right,
Across, or Hold (no pass), cycling round to round.

THE FIRST TRICK
---------------
Whoever holds the 2 of clubs leads it; the first trick may not be
used to discard a heart or the queen of spades unless a hand holds
nothing else.

FOLLOWING SUIT
--------------
Play the suit led if you can. Otherwise, play anything — this is how
penalty cards usually move.

HEARTS AND THE QUEEN OF SPADES
-------------------------------
A heart may not lead a trick until a heart has been played to an
earlier trick ("hearts broken"), unless the leader holds nothing but
hearts.

SCORING
-------
Each heart is worth 1 penalty point; the queen of spades is worth 13.
Lowest cumulative score at game end wins.

Use 'heartsbot rules passing' or 'heartsbot rules scoring' for more
detail.
`)
	return nil
}

func showPassingRules(c *cli.Context) error {
	fmt.Print(`
PASSING CYCLE
=============

Round 1: pass Left
Round 2: pass Right
Round 3: pass Across
Round 4: Hold (no pass)
Then the cycle repeats.
`)
	return nil
}

func showScoringRules(c *cli.Context) error {
	fmt.Print(`
SCORING AND SHOOTING THE MOON
==============================

Each heart: 1 point. Queen of spades: 13 points. A round totals 26
points distributed across however many seats took a penalty card.

SHOOTING THE MOON: if one seat captures all 26 points in a round,
that seat scores 0 and every other seat scores 26 instead.
`)
	return nil
}
