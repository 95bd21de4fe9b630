package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wyvern-chess/wyvern/engine"
)

func testHelper(t *testing.T, fen string, testData []counters) {
	for depth, expected := range testData {
		if testing.Short() && expected.nodes > 200000 {
			return
		}

		b, err := engine.ParseFEN(fen)
		require.NoError(t, err, "invalid FEN: %s", fen)

		actual := perft(b, depth, hashTable)
		require.Equal(t, expected, actual, "at depth %d", depth)
	}
}

func TestPerftInitial(t *testing.T) {
	testHelper(t, startpos, StandardData[:6])
}

func TestPerftKiwipete(t *testing.T) {
	testHelper(t, kiwipete, KiwipeteData[:5])
}

func TestPerftDuplain(t *testing.T) {
	testHelper(t, duplain, DuplainData[:7])
}

// TestPerftChess960Orthodox checks that Scharnagl index 518, the one
// Chess960 index that reproduces the standard chess array, yields the
// back rank RNBQKBNR.
func TestPerftChess960Orthodox(t *testing.T) {
	rank := engine.ScharnaglBackRank(518)
	want := [8]engine.PieceType{
		engine.Rook, engine.Knight, engine.Bishop, engine.Queen,
		engine.King, engine.Bishop, engine.Knight, engine.Rook,
	}
	require.Equal(t, want, rank)
}

func benchHelper(b *testing.B, fen string, depth int) {
	board, _ := engine.ParseFEN(fen)
	for i := 0; i < b.N; i++ {
		perft(board, depth, nil)
	}
}

func BenchmarkPerftInitial(b *testing.B) {
	benchHelper(b, startpos, 4)
}

func BenchmarkPerftKiwipete(b *testing.B) {
	benchHelper(b, kiwipete, 3)
}

func BenchmarkPerftDuplain(b *testing.B) {
	benchHelper(b, duplain, 4)
}
