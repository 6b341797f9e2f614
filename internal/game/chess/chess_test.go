package chess

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/colindiffer/pocketgames/internal/game"
)

func newTestMatch(t *testing.T) *Match {
	t.Helper()
	return NewMatch(2, rand.New(rand.NewSource(1)))
}

// bareMatch returns a match with an empty board, no castling rights and
// no en passant target, for hand-built positions.
func bareMatch(t *testing.T) *Match {
	t.Helper()
	m := newTestMatch(t)
	m.pos.board = Board{}
	m.pos.rights = castleRights{}
	m.pos.epCol = -1
	return m
}

func TestOpeningMoveCounts(t *testing.T) {
	m := newTestMatch(t)

	assert.Len(t, m.Moves(), 20, "white has 20 opening moves")

	require.True(t, m.Play(Move{6, 4, 4, 4, 0})) // e4
	assert.Equal(t, Black, m.Turn)
	assert.Len(t, m.Moves(), 20, "black has 20 replies")
}

func TestPlay_RejectsIllegal(t *testing.T) {
	m := newTestMatch(t)

	assert.False(t, m.Play(Move{6, 4, 3, 4, 0}), "pawn cannot advance three")
	assert.False(t, m.Play(Move{7, 0, 5, 0, 0}), "rook cannot pass through pawn")
	assert.False(t, m.Play(Move{1, 4, 3, 4, 0}), "black cannot move on white's turn")
	assert.Equal(t, White, m.Turn)
}

func TestFoolsMate(t *testing.T) {
	m := newTestMatch(t)

	for _, mv := range []Move{
		{6, 5, 5, 5, 0}, // f3
		{1, 4, 3, 4, 0}, // e5
		{6, 6, 4, 6, 0}, // g4
		{0, 3, 4, 7, 0}, // Qh4#
	} {
		require.True(t, m.Play(mv))
	}

	assert.True(t, m.InCheck(White))
	assert.True(t, m.GameOver())
	assert.Equal(t, game.Lost, m.Outcome())
	assert.Equal(t, int64(0), m.Score())
	assert.False(t, m.Play(Move{6, 0, 5, 0, 0}), "no moves after mate")
}

func TestCastling_KingSide(t *testing.T) {
	m := newTestMatch(t)

	for _, mv := range []Move{
		{6, 4, 4, 4, 0}, // e4
		{1, 4, 3, 4, 0}, // e5
		{7, 6, 5, 5, 0}, // Nf3
		{0, 1, 2, 2, 0}, // Nc6
		{7, 5, 4, 2, 0}, // Bc4
		{0, 5, 3, 2, 0}, // Bc5
	} {
		require.True(t, m.Play(mv))
	}

	require.True(t, m.Play(Move{7, 4, 7, 6, 0}), "O-O")
	assert.Equal(t, King, m.pos.board[7][6], "king on g1")
	assert.Equal(t, Rook, m.pos.board[7][5], "rook hopped to f1")
	assert.Equal(t, Empty, m.pos.board[7][7])
	assert.False(t, m.pos.rights.whiteKing)
	assert.False(t, m.pos.rights.whiteQueen)
}

func TestCastling_LostAfterKingMove(t *testing.T) {
	m := newTestMatch(t)

	for _, mv := range []Move{
		{6, 4, 4, 4, 0}, // e4
		{1, 4, 3, 4, 0}, // e5
		{7, 4, 6, 4, 0}, // Ke2
		{1, 0, 2, 0, 0}, // a6
		{6, 4, 7, 4, 0}, // Ke1
		{1, 7, 2, 7, 0}, // h6
		{7, 6, 5, 5, 0}, // Nf3
		{2, 0, 3, 0, 0}, // a5
		{7, 5, 4, 2, 0}, // Bc4
		{2, 7, 3, 7, 0}, // h5
	} {
		require.True(t, m.Play(mv))
	}

	assert.False(t, m.Play(Move{7, 4, 7, 6, 0}), "rights lapsed after king moved")
}

func TestEnPassant(t *testing.T) {
	m := newTestMatch(t)

	for _, mv := range []Move{
		{6, 4, 4, 4, 0}, // e4
		{1, 0, 2, 0, 0}, // a6
		{4, 4, 3, 4, 0}, // e5
		{1, 3, 3, 3, 0}, // d5
	} {
		require.True(t, m.Play(mv))
	}

	require.True(t, m.Play(Move{3, 4, 2, 3, 0}), "exd6 e.p.")
	assert.Equal(t, Pawn, m.pos.board[2][3], "white pawn landed on d6")
	assert.Equal(t, Empty, m.pos.board[3][3], "black d-pawn removed")
}

func TestEnPassant_ExpiresAfterOnePly(t *testing.T) {
	m := newTestMatch(t)

	for _, mv := range []Move{
		{6, 4, 4, 4, 0}, // e4
		{1, 0, 2, 0, 0}, // a6
		{4, 4, 3, 4, 0}, // e5
		{1, 3, 3, 3, 0}, // d5
		{6, 0, 5, 0, 0}, // a3, declining the capture
		{2, 0, 3, 0, 0}, // a5
	} {
		require.True(t, m.Play(mv))
	}

	assert.False(t, m.Play(Move{3, 4, 2, 3, 0}), "en passant window closed")
}

func TestPromotion_DefaultsToQueen(t *testing.T) {
	m := bareMatch(t)
	m.pos.board[7][4] = King
	m.pos.board[0][7] = -King
	m.pos.board[1][0] = Pawn

	require.True(t, m.Play(Move{1, 0, 0, 0, 0}))
	assert.Equal(t, Queen, m.pos.board[0][0])
}

func TestPromotion_Underpromotion(t *testing.T) {
	m := bareMatch(t)
	m.pos.board[7][4] = King
	m.pos.board[0][7] = -King
	m.pos.board[1][0] = Pawn

	require.True(t, m.Play(Move{1, 0, 0, 0, Knight}))
	assert.Equal(t, Knight, m.pos.board[0][0])
}

func TestPinnedPieceCannotMove(t *testing.T) {
	m := bareMatch(t)
	m.pos.board[7][4] = King
	m.pos.board[6][4] = Bishop // pinned on the e-file
	m.pos.board[0][4] = -Rook
	m.pos.board[0][0] = -King

	for _, mv := range m.Moves() {
		assert.False(t, mv.FromRow == 6 && mv.FromCol == 4,
			"pinned bishop moved %v", mv)
	}
}

func TestStalemate(t *testing.T) {
	m := bareMatch(t)
	m.pos.board[0][0] = -King
	m.pos.board[1][2] = Queen
	m.pos.board[3][3] = King
	m.Turn = Black

	assert.False(t, m.InCheck(Black))
	assert.True(t, m.GameOver())
	assert.Equal(t, game.Draw, m.Outcome())
}

func TestFiftyMoveRule(t *testing.T) {
	m := newTestMatch(t)
	m.halfmoves = 100

	assert.True(t, m.GameOver())
	assert.Equal(t, game.Draw, m.Outcome())
}

func TestAIMove_FindsMateInOne(t *testing.T) {
	m := newTestMatch(t)

	for _, mv := range []Move{
		{6, 5, 5, 5, 0}, // f3
		{1, 4, 3, 4, 0}, // e5
		{6, 6, 4, 6, 0}, // g4
	} {
		require.True(t, m.Play(mv))
	}

	played := m.AIMove()
	require.NotNil(t, played)
	assert.Equal(t, Move{0, 3, 4, 7, 0}, *played, "Qh4#")
	assert.Equal(t, game.Lost, m.Outcome())
}

func TestAIMove_TakesHangingQueen(t *testing.T) {
	m := bareMatch(t)
	m.pos.board[7][4] = King
	m.pos.board[4][4] = Queen
	m.pos.board[0][4] = -King
	m.pos.board[4][0] = -Rook
	m.Turn = Black

	played := m.AIMove()
	require.NotNil(t, played)
	assert.Equal(t, Move{4, 0, 4, 4, 0}, *played, "rook takes the free queen")
}

func TestSelfPlay_StaysLegal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		rng := rand.New(rand.NewSource(seed))
		m := NewMatch(1, rng)

		for ply := 0; ply < 120 && !m.GameOver(); ply++ {
			if m.Turn == White {
				moves := m.Moves()
				require.NotEmpty(t, moves)
				require.True(t, m.Play(moves[rng.Intn(len(moves))]))
			} else {
				require.NotNil(t, m.AIMove())
			}

			whiteKings, blackKings := 0, 0
			b := m.Board()
			for r := 0; r < Size; r++ {
				for c := 0; c < Size; c++ {
					switch b[r][c] {
					case King:
						whiteKings++
					case -King:
						blackKings++
					}
				}
			}
			require.Equal(t, 1, whiteKings)
			require.Equal(t, 1, blackKings)
		}
	})
}

func TestAdapter(t *testing.T) {
	g := New()
	assert.Equal(t, "chess", g.ID())
	assert.Equal(t, []game.Difficulty{game.Easy, game.Medium, game.Hard}, g.Difficulties())

	_, err := g.NewMatch(game.Expert, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, game.ErrUnknownDifficulty)

	m, err := g.NewMatch(game.Medium, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.False(t, m.GameOver())
	assert.Equal(t, game.InProgress, m.Outcome())
}
