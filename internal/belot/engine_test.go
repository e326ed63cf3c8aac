package belot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreRound_NoBonuses(t *testing.T) {
	cases := []struct {
		name     string
		raw1     int
		raw2     int
	}{
		{"even split", 81, 81},
		{"lopsided", 150, 12},
		{"shutout", 162, 0},
		{"zero round", 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := ScoreRound(RoundInput{Team1RawScore: tc.raw1, Team2RawScore: tc.raw2})
			assert.Equal(t, tc.raw1, r.Team1Score)
			assert.Equal(t, tc.raw2, r.Team2Score)
			assert.Equal(t, tc.raw1, r.Team1RawScore)
			assert.Equal(t, tc.raw2, r.Team2RawScore)
			assert.Zero(t, r.DeclarationsValue)
			assert.Nil(t, r.HigherContract)
			assert.Nil(t, r.CardColor)
		})
	}
}

func TestScoreRound_Declarations(t *testing.T) {
	r := ScoreRound(RoundInput{
		Team1RawScore: 90,
		Team2RawScore: 72,
		Declarations: []Declaration{
			NewDeclaration("p1", 0, 20, 50),
			NewDeclaration("p2", 1, 100),
			NewDeclaration("p3", 2, 20),
		},
	})

	// Each team's final score rises by exactly its own declaration subtotal.
	assert.Equal(t, 90+70+20, r.Team1Score)
	assert.Equal(t, 72+100, r.Team2Score)
	assert.Equal(t, 90, r.Team1RawScore)
	assert.Equal(t, 72, r.Team2RawScore)

	sum := 0
	for _, d := range r.PlayerDeclarations {
		sum += d.Total
	}
	assert.Equal(t, sum, r.DeclarationsValue)
	assert.Equal(t, 190, r.DeclarationsValue)
}

func TestScoreRound_DeclarationReplacesSameSeat(t *testing.T) {
	r := ScoreRound(RoundInput{
		Team1RawScore: 100,
		Team2RawScore: 62,
		Declarations: []Declaration{
			NewDeclaration("p1", 0, 200),
			NewDeclaration("p1", 0, 20), // re-declared; last one wins
		},
	})

	require.Len(t, r.PlayerDeclarations, 1)
	assert.Equal(t, 20, r.PlayerDeclarations[0].Total)
	assert.Equal(t, 120, r.Team1Score)
	assert.Equal(t, 20, r.DeclarationsValue)
}

func TestScoreRound_HigherContract(t *testing.T) {
	cases := []struct {
		name      string
		raw1      int
		raw2      int
		decls     []Declaration
		seat      int
		wantTeam1 int
		wantTeam2 int
	}{
		{
			// team 2 final 122 > half (81): the contract holds.
			name: "made contract", raw1: 40, raw2: 122, seat: 1,
			wantTeam1: 40, wantTeam2: 122,
		},
		{
			// team 2 final 72 <= half (81): the whole round is forfeited.
			name: "failed contract", raw1: 90, raw2: 72, seat: 1,
			wantTeam1: 90, wantTeam2: 0,
		},
		{
			// exactly half counts as failure.
			name: "tie is failure", raw1: 81, raw2: 81, seat: 0,
			wantTeam1: 0, wantTeam2: 81,
		},
		{
			// declarations count toward the half threshold and are also
			// forfeited along with the trick points.
			name: "declarations forfeited with the round",
			raw1: 60, raw2: 82,
			decls: []Declaration{NewDeclaration("p1", 2, 20)},
			seat:  2,
			// finals before the rule: 80 vs 82, half = 81, 80 <= 81.
			wantTeam1: 0, wantTeam2: 82,
		},
		{
			// declarations can rescue a contract too.
			name: "declarations carry the contract",
			raw1: 80, raw2: 82,
			decls: []Declaration{NewDeclaration("p1", 0, 50)},
			seat:  0,
			// finals: 130 vs 82, half = 106, 130 > 106.
			wantTeam1: 130, wantTeam2: 82,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := ScoreRound(RoundInput{
				Team1RawScore: tc.raw1,
				Team2RawScore: tc.raw2,
				Declarations:  tc.decls,
				Contract:      &ContractCall{Seat: tc.seat, Color: Hearts},
			})
			assert.Equal(t, tc.wantTeam1, r.Team1Score)
			assert.Equal(t, tc.wantTeam2, r.Team2Score)
			require.NotNil(t, r.HigherContract)
			assert.Equal(t, tc.seat, *r.HigherContract)
			require.NotNil(t, r.CardColor)
			assert.Equal(t, Hearts, *r.CardColor)
			// Raw scores always survive for audit, forfeiture or not.
			assert.Equal(t, tc.raw1, r.Team1RawScore)
			assert.Equal(t, tc.raw2, r.Team2RawScore)
		})
	}
}

func TestSeatMath(t *testing.T) {
	assert.Equal(t, 1, TeamOf(0))
	assert.Equal(t, 2, TeamOf(1))
	assert.Equal(t, 1, TeamOf(2))
	assert.Equal(t, 2, TeamOf(3))

	assert.Equal(t, 2, PartnerOf(0))
	assert.Equal(t, 3, PartnerOf(1))
	assert.Equal(t, 0, PartnerOf(2))
	assert.Equal(t, 1, PartnerOf(3))

	// The deal moves counter-clockwise: 3 -> 2 -> 1 -> 0 -> 3.
	assert.Equal(t, 2, NextDealer(3))
	assert.Equal(t, 1, NextDealer(2))
	assert.Equal(t, 0, NextDealer(1))
	assert.Equal(t, 3, NextDealer(0))

	assert.Equal(t, [2]int{0, 2}, TeamSeats(1))
	assert.Equal(t, [2]int{1, 3}, TeamSeats(2))
}

func TestNewDeclaration(t *testing.T) {
	d := NewDeclaration("p1", 3, 20, 50, 100)
	assert.Equal(t, 170, d.Total)
	assert.Equal(t, []int{20, 50, 100}, d.Values)
	assert.True(t, IsDeclarationValue(150))
	assert.False(t, IsDeclarationValue(40))
}

func TestGameTotals(t *testing.T) {
	g := &Game{Rounds: []Round{
		{Team1Score: 80, Team2Score: 82},
		{Team1Score: 90, Team2Score: 72},
		{Team1Score: 170, Team2Score: 12},
	}}
	assert.Equal(t, Score{Team1: 340, Team2: 166}, g.Totals())
}

func TestCardColorValid(t *testing.T) {
	for _, c := range CardColors {
		assert.True(t, c.Valid())
	}
	assert.False(t, CardColor("spades").Valid())
}
