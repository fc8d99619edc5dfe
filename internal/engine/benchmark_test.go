package engine

import (
	"math/rand"
	"testing"

	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"github.com/lgbarn/infinite-chess-go/internal/testutil"
)

// scatteredGame places n random pieces far apart on an unbounded board.
func scatteredGame(b *testing.B, n int) *Game {
	b.Helper()
	rng := rand.New(rand.NewSource(1))
	species := []chess.Species{chess.Rook, chess.Bishop, chess.Queen, chess.Knight, chess.Hawk, chess.Knightrider}
	pieces := []chess.Placement{at(chess.W(chess.King), 0, 0), at(chess.B(chess.King), 1, 1000)}
	seen := map[chess.Coords]bool{{X: 0, Y: 0}: true, {X: 1, Y: 1000}: true}
	for len(pieces) < n {
		c := chess.C(rng.Int63n(2000)-1000, rng.Int63n(2000)-1000)
		if seen[c] {
			continue
		}
		seen[c] = true
		colour := chess.White
		if rng.Intn(2) == 0 {
			colour = chess.Black
		}
		s := species[rng.Intn(len(species))]
		pieces = append(pieces, chess.Placement{Type: chess.MakePieceType(colour, s), Coords: c})
	}
	g, err := NewGame(testutil.UnboundedRules(), pieces, WithCheckmateThreshold(n+1))
	if err != nil {
		b.Fatal(err)
	}
	return g
}

func BenchmarkIsAttacked(b *testing.B) {
	g := scatteredGame(b, 2000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.IsAttacked(chess.C(int64(i%200), 7), chess.White)
	}
}

func BenchmarkCalculateLegalMoves(b *testing.B) {
	g := newFENGame(b, testutil.KiwipeteFEN)
	pieces := g.Board().PiecesOf(chess.White)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, p := range pieces {
			g.CalculateLegalMoves(p)
		}
	}
}

func BenchmarkPerftStart3(b *testing.B) {
	g := newFENGame(b, testutil.StartFEN)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.Perft(3); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMakeRewind(b *testing.B) {
	g := newFENGame(b, testutil.KiwipeteFEN)
	drafts, err := g.LegalDrafts()
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m, err := g.BuildMove(drafts[i%len(drafts)])
		if err != nil {
			b.Fatal(err)
		}
		if err := g.MakeMove(m, perftOptions); err != nil {
			b.Fatal(err)
		}
		if err := g.RewindMove(RewindOptions{RemoveMove: true, Simulated: true}); err != nil {
			b.Fatal(err)
		}
	}
}
