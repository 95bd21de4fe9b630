// Perft is a move-generator correctness and benchmark tool.
//
// Perft counts nodes, captures, en passant captures, castles and
// promotions reached after making every legal move to a fixed depth
// from a given position. Comparing the counts against known-correct
// values is the standard way to validate a chess move generator; see
// https://www.chessprogramming.org/Perft.
//
// Examples:
//
//	$ go run ./perft --fen startpos --max_depth 6
//	$ go run ./perft --fen kiwipete --max_depth 5
//	$ go run ./perft --frc 518 --max_depth 5   // orthodox start via Scharnagl
package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/op/go-logging"

	"github.com/wyvern-chess/wyvern/engine"
)

var log = logging.MustGetLogger("perft")

var (
	fen        = flag.String("fen", "startpos", "position to search")
	minDepth   = flag.Int("min_depth", 1, "minimum depth to search (inclusive)")
	maxDepth   = flag.Int("max_depth", 5, "maximum depth to search (inclusive)")
	depth      = flag.Int("depth", 0, "if non zero, searches only this depth")
	splitDepth = flag.Int("split", 0, "split depth")
	frcIndex   = flag.Int("frc", -1, "Scharnagl index (0-959); overrides --fen when >= 0")

	splitMoves []string
)

type counters struct {
	nodes      uint64
	captures   uint64
	enpassant  uint64
	castles    uint64
	promotions uint64
}

func (c *counters) Add(o counters) {
	c.nodes += o.nodes
	c.captures += o.captures
	c.enpassant += o.enpassant
	c.castles += o.castles
	c.promotions += o.promotions
}

type hashEntry struct {
	key      uint64
	counters counters
	depth    int
}

var (
	startpos = engine.FENStartPos
	kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	duplain  = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"

	known = map[string]string{
		"startpos": startpos,
		"kiwipete": kiwipete,
		"duplain":  duplain,
	}

	// StandardData holds verified perft node counts for startpos.
	StandardData = []counters{
		{1, 0, 0, 0, 0},
		{20, 0, 0, 0, 0},
		{400, 0, 0, 0, 0},
		{8902, 34, 0, 0, 0},
		{197281, 1576, 0, 0, 0},
		{4865609, 82719, 258, 0, 0},
		{119060324, 2812008, 5248, 0, 0},
	}

	// KiwipeteData holds verified perft node counts for the kiwipete
	// position, chosen to stress castling, en passant and promotion.
	KiwipeteData = []counters{
		{1, 0, 0, 0, 0},
		{48, 8, 0, 2, 0},
		{2039, 351, 1, 91, 0},
		{97862, 17102, 45, 3162, 0},
		{4085603, 757163, 1929, 128013, 15172},
	}

	// DuplainData holds verified perft node counts for an endgame
	// position with a lone rook and pawn promotion races.
	DuplainData = []counters{
		{1, 0, 0, 0, 0},
		{14, 1, 0, 0, 0},
		{191, 14, 0, 0, 0},
		{2812, 209, 2, 0, 0},
		{43238, 3348, 123, 0, 0},
		{674624, 52051, 1165, 0, 0},
		{11030083, 940350, 33325, 0, 7552},
	}

	data = map[string][]counters{
		startpos: StandardData,
		kiwipete: KiwipeteData,
		duplain:  DuplainData,
	}

	hashSize  = 1 << 20
	hashTable = make([]hashEntry, hashSize)
)

func perft(b *engine.Board, depth int, hashTable []hashEntry) counters {
	if depth == 0 {
		return counters{1, 0, 0, 0, 0}
	}

	key := b.Keys.main
	if hashTable != nil {
		index := key % uint64(len(hashTable))
		if hashTable[index].depth == depth && hashTable[index].key == key {
			return hashTable[index].counters
		}
	}

	var r counters
	var ml engine.MoveList
	b.GenerateMoves(&ml)
	for _, m := range ml.Moves {
		if !b.MakeMove(m, nil) {
			continue
		}

		if depth == 1 {
			if m.IsCapture() {
				r.captures++
			}
			if m.IsEnPassant() {
				r.enpassant++
			}
			if m.IsCastle() {
				r.castles++
			}
			if m.IsPromotion() {
				r.promotions++
			}
		}

		r.Add(perft(b, depth-1, hashTable))
		b.UnmakeMove()
	}

	if hashTable != nil {
		index := key % uint64(len(hashTable))
		hashTable[index] = hashEntry{key: key, counters: r, depth: depth}
	}
	return r
}

func split(b *engine.Board, depth, splitDepth int) counters {
	var r counters
	if depth == 0 || splitDepth == 0 {
		r = perft(b, depth, hashTable)
	} else {
		var ml engine.MoveList
		b.GenerateMoves(&ml)
		for _, m := range ml.Moves {
			if !b.MakeMove(m, nil) {
				continue
			}
			splitMoves = append(splitMoves, m.String())
			r.Add(split(b, depth-1, splitDepth-1))
			splitMoves = splitMoves[:len(splitMoves)-1]
			b.UnmakeMove()
		}
	}

	if len(splitMoves) != 0 {
		fmt.Printf("   %2d %12d %8d %9d %7d split %s\n",
			depth, r.nodes, r.captures, r.enpassant, r.castles, strings.Join(splitMoves, " "))
	}
	return r
}

func main() {
	flag.Parse()

	var expected []counters
	if s, has := known[*fen]; has {
		*fen = s
		expected = data[*fen]
	}
	if *depth != 0 {
		*minDepth = *depth
		*maxDepth = *depth
	}

	if *frcIndex >= 0 {
		engine.SetChess960(true)
		log.Infof("using Scharnagl index %d", *frcIndex)
		var white, black string
		for _, pt := range engine.ScharnaglBackRank(*frcIndex) {
			white += engine.ColorFigure(engine.White, pt).String()
			black += engine.ColorFigure(engine.Black, pt).String()
		}
		*fen = black + "/pppppppp/8/8/8/8/PPPPPPPP/" + white + " w KQkq - 0 1"
		expected = data[*fen]
	}

	log.Infof("searching FEN %q", *fen)
	b, err := engine.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("cannot parse --fen: %v", err)
	}

	fmt.Printf("depth        nodes   captures enpassant castles   promotions eval  KNps   elapsed\n")
	fmt.Printf("-----+------------+----------+---------+---------+----------+-----+------+-------\n")

	for d := *minDepth; d <= *maxDepth; d++ {
		start := time.Now()
		c := split(b, d, *splitDepth)
		duration := time.Since(start)

		ok := ""
		if d < len(expected) {
			if c == expected[d] {
				ok = "good"
			} else {
				ok = "bad"
			}
		}

		fmt.Printf("   %2d %12d %10d %9d %9d %10d %-4s %6.f %v\n",
			d, c.nodes, c.captures, c.enpassant, c.castles, c.promotions,
			ok, float64(c.nodes)/duration.Seconds()/1e3, duration)

		if ok == "bad" {
			e := expected[d]
			fmt.Printf("   %2d %12d %10d %9d %9d %10d %s\n",
				d, e.nodes, e.captures, e.enpassant, e.castles, e.promotions, "expected")
			break
		}
	}
}
