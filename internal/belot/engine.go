package belot

import "sort"

// RoundInput carries the caller-supplied inputs for one round. Raw scores
// must already satisfy Team1RawScore+Team2RawScore <= TrickPointPool; the
// engine treats that as a precondition and never re-checks it.
type RoundInput struct {
	Team1RawScore int
	Team2RawScore int
	Declarations  []Declaration
	Contract      *ContractCall
}

// ScoreRound turns raw round inputs into the recorded round. It is a pure
// function: no clock, no ids, no storage. The caller stamps ID and Timestamp
// before appending the result to a game.
//
// Declarations are deduplicated per seat (last one wins) and each team's
// subtotal is added to its raw score. If a higher contract was called, the
// contracting team must end strictly above half of the combined final
// scores; at or below half its entire round score, declarations included,
// is forfeited. The opposing team keeps its score either way.
func ScoreRound(in RoundInput) Round {
	decls := dedupeBySeat(in.Declarations)

	var declTotal, team1Decl, team2Decl int
	for _, d := range decls {
		declTotal += d.Total
		if TeamOf(d.PlayerIndex) == 1 {
			team1Decl += d.Total
		} else {
			team2Decl += d.Total
		}
	}

	final1 := in.Team1RawScore + team1Decl
	final2 := in.Team2RawScore + team2Decl

	round := Round{
		Team1RawScore:      in.Team1RawScore,
		Team2RawScore:      in.Team2RawScore,
		DeclarationsValue:  declTotal,
		PlayerDeclarations: decls,
	}

	if in.Contract != nil {
		seat := in.Contract.Seat
		color := in.Contract.Color
		round.HigherContract = &seat
		round.CardColor = &color

		// Half of the combined post-declaration scores; a tie counts as
		// failure, so integer division is equivalent to the exact half.
		halfPoints := (final1 + final2) / 2
		if TeamOf(seat) == 1 {
			if final1 <= halfPoints {
				final1 = 0
			}
		} else {
			if final2 <= halfPoints {
				final2 = 0
			}
		}
	}

	round.Team1Score = final1
	round.Team2Score = final2
	return round
}

// dedupeBySeat keeps the last declaration submitted for each seat and
// returns the survivors in seat order.
func dedupeBySeat(decls []Declaration) []Declaration {
	if len(decls) == 0 {
		return nil
	}
	bySeat := make(map[int]Declaration, len(decls))
	for _, d := range decls {
		bySeat[d.PlayerIndex] = d
	}
	out := make([]Declaration, 0, len(bySeat))
	for _, d := range bySeat {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerIndex < out[j].PlayerIndex })
	return out
}
