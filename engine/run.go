package engine

import (
	"qsweeper/game"
	"time"

	"github.com/rs/zerolog/log"
)

// Run plays one episode on b until a bomb is hit, the board is won, the policy runs out of
// candidates or maxMoves moves were played. A maxMoves of 0 disables the cap.
func Run(b *game.Board, p Policy, maxMoves int) Result {
	startTime := time.Now()
	ep := NewEpisode()
	p.Begin()

	outcome := game.Undefined
	capped := false
	for {
		if b.CheckWinState() {
			outcome = game.Win
			break
		}
		if maxMoves > 0 && ep.Moves >= maxMoves {
			capped = true
			break
		}

		step, ok := p.Next(b, ep)
		if !ok {
			break
		}

		resp := game.Nothing
		if b.ValidateCoordinates(step.Target) {
			resp = b.RevealTile(step.Target)
			ep.Visited[step.Target] = true
			if e := log.Debug(); e.Enabled() {
				e.Msgf("move %d revealed (%d,%d): %s\n%s", ep.Moves+1, step.Target.X, step.Target.Y, resp, b)
			}
		}

		p.Learn(step, resp)
		ep.History = append(ep.History, step)
		ep.Moves++

		if resp == game.Bomb {
			outcome = game.Loss
			break
		}
	}

	p.End(ep, outcome)

	return Result{
		Outcome:   outcome,
		Moves:     ep.Moves,
		Cleared:   b.GetPercentageCleared(),
		Capped:    capped,
		StartTime: startTime,
		Duration:  time.Since(startTime),
		History:   ep.History,
	}
}
