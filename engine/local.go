package engine

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"hexkeep/agent"
	"hexkeep/experiments/metrics"
	"hexkeep/game"
	"hexkeep/meta"
)

var ErrStalled = errors.New("game stalled")

type Option func(e *Local)

func WithMaxRounds(rounds int) Option {
	return func(e *Local) {
		if rounds > 0 {
			e.maxRounds = rounds
		}
	}
}

func WithCollector(c metrics.Collector) Option {
	return func(e *Local) {
		if c != nil {
			e.metrics = c
		}
	}
}

// Local drives a game in-process with one agent per faction.
type Local struct {
	State     *game.GameState
	Agents    map[game.Faction]agent.Agent
	maxRounds int
	metrics   metrics.Collector

	phaseKey [2]int // round and phase the action count belongs to
	actions  int
}

func NewLocal(state *game.GameState, agents map[game.Faction]agent.Agent, options ...Option) *Local {
	for _, f := range game.Factions {
		if agents[f] == nil {
			panic(fmt.Sprintf("no agent for %s", f))
		}
	}
	e := &Local{
		State:     state,
		Agents:    agents,
		maxRounds: meta.MAX_ROUNDS,
		metrics:   metrics.NewCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop until a winner is found or the round limit is hit.
func (e *Local) Run() (game.Faction, metrics.GameMetric) {
	gs := e.State
	e.metrics.Start()

	if gs.Phase == game.SetupPhase {
		if err := gs.Start(); err != nil {
			log.Error().Err(err).Msg("cannot start game")
			return game.NoFaction, e.metrics.Complete(gs)
		}
	}
	log.Info().Msgf("game starting with %d units", len(gs.Units))

	round := gs.Round
	for !gs.Over() && gs.Round <= e.maxRounds {
		if err := e.step(); err != nil {
			log.Error().Err(err).Msgf("stopping in round %d", gs.Round)
			break
		}
		if gs.Round != round {
			round = gs.Round
			log.Info().Msgf("round %d (castle damage %d:%d)", round,
				gs.CastleDamage[game.Faction1], gs.CastleDamage[game.Faction2])
		}
	}

	metric := e.metrics.Complete(gs)
	outcome := gs.Winner()
	if outcome == nil {
		metric.Rounds = min(metric.Rounds, e.maxRounds)
		log.Info().Msgf("stopped after %d rounds without a winner", metric.Rounds)
		return game.NoFaction, metric
	}
	log.Info().Msgf("%s wins in round %d: %s", outcome.Winner, gs.Round, outcome.Reason)
	return outcome.Winner, metric
}

// step advances the game by one agent interaction.
func (e *Local) step() error {
	gs := e.State
	if d := gs.Pending(); d != nil {
		return e.decide(d)
	}

	switch {
	case gs.Phase.MovingFaction() != game.NoFaction:
		return e.move(gs.Phase.MovingFaction())
	case gs.Phase == game.AbilityTargetingPhase:
		return e.target()
	default:
		return fmt.Errorf("%w: nothing to do in %s", ErrStalled, gs.Phase)
	}
}

func (e *Local) decide(d *game.Decision) error {
	gs := e.State
	e.metrics.AddDecision()
	answer := e.Agents[d.Faction].Decide(gs, d)
	err := gs.Decide(answer)
	if err == nil {
		return nil
	}
	log.Warn().Err(err).Msgf("%s answered %s badly, using the default", d.Faction, d.Kind)
	return gs.Decide(fallback(d))
}

// fallback is the answer the game would pick itself.
func fallback(d *game.Decision) game.Answer {
	if d.Kind == game.AllocateDamage {
		return game.Answer{Allocation: game.EvenSplit(d.Candidates, d.Total)}
	}
	if len(d.Candidates) == 0 {
		return game.Answer{}
	}
	return game.Answer{Unit: d.Candidates[0]}
}

func (e *Local) move(f game.Faction) error {
	gs := e.State
	key := [2]int{gs.Round, int(gs.Phase)}
	if key != e.phaseKey {
		e.phaseKey = key
		e.actions = 0
	}
	if e.actions >= MaxActionsPerPhase {
		log.Warn().Msgf("%s exceeded %d actions, closing its phase", f, MaxActionsPerPhase)
		return gs.EndPhase()
	}

	action, ok := e.Agents[f].NextMove(gs)
	if !ok {
		return gs.EndPhase()
	}
	e.actions++
	e.metrics.AddAction()

	var err error
	if action.Skip {
		err = gs.Skip(action.Unit)
	} else {
		err = gs.Move(action.Unit, action.To)
	}
	if err != nil {
		log.Debug().Err(err).Msgf("%s action rejected", f)
	}
	return nil
}

func (e *Local) target() error {
	gs := e.State
	session := gs.Targeting
	if session == nil {
		return fmt.Errorf("%w: no targeting session", ErrStalled)
	}
	u := gs.Unit(session.Current)
	if u == nil {
		return gs.SkipTarget()
	}
	e.metrics.AddTarget()
	h, ok := e.Agents[session.Player].ChooseTarget(gs, u)
	if !ok {
		return gs.SkipTarget()
	}
	if err := gs.TargetHex(h); err != nil {
		if !errors.Is(err, game.ErrInvalidTarget) {
			return err
		}
		log.Debug().Err(err).Msgf("%s target rejected", session.Player)
		return gs.SkipTarget()
	}
	return nil
}
