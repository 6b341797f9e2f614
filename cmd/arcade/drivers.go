package main

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
	"github.com/colindiffer/pocketgames/internal/game/backgammon"
	"github.com/colindiffer/pocketgames/internal/game/battleship"
	"github.com/colindiffer/pocketgames/internal/game/blackjack"
	"github.com/colindiffer/pocketgames/internal/game/cards"
	"github.com/colindiffer/pocketgames/internal/game/checkers"
	"github.com/colindiffer/pocketgames/internal/game/chess"
	"github.com/colindiffer/pocketgames/internal/game/connectfour"
	"github.com/colindiffer/pocketgames/internal/game/freecell"
	"github.com/colindiffer/pocketgames/internal/game/game2048"
	"github.com/colindiffer/pocketgames/internal/game/hearts"
	"github.com/colindiffer/pocketgames/internal/game/klondike"
	"github.com/colindiffer/pocketgames/internal/game/maze"
	"github.com/colindiffer/pocketgames/internal/game/minesweeper"
	"github.com/colindiffer/pocketgames/internal/game/poker"
	"github.com/colindiffer/pocketgames/internal/game/reversi"
	"github.com/colindiffer/pocketgames/internal/game/sudoku"
	"github.com/colindiffer/pocketgames/internal/game/tictactoe"
)

// playMatch drives one match to a terminal state with a cheap scripted
// policy for the human seat, leaning on each engine's own AI for the
// other side. Games that can stall are abandoned through their GiveUp.
func playMatch(match game.Match, rng *rand.Rand) {
	switch m := match.(type) {
	case *tictactoe.Match:
		playTicTacToe(m, rng)
	case *minesweeper.Match:
		playMinesweeper(m, rng)
	case *sudoku.Match:
		playSudoku(m)
	case *reversi.Match:
		playReversi(m, rng)
	case *connectfour.Match:
		playConnectFour(m, rng)
	case *checkers.Match:
		playCheckers(m, rng)
	case *chess.Match:
		playChess(m, rng)
	case *backgammon.Match:
		playBackgammon(m, rng)
	case *hearts.Match:
		playHearts(m, rng)
	case *blackjack.Match:
		playBlackjack(m)
	case *poker.Match:
		playPoker(m)
	case *freecell.Match:
		playFreecell(m)
	case *klondike.Match:
		playKlondike(m)
	case *battleship.Match:
		playBattleship(m, rng)
	case *game2048.Match:
		play2048(m, rng)
	case *maze.Match:
		playMaze(m, rng)
	}
}

func playTicTacToe(m *tictactoe.Match, rng *rand.Rand) {
	for !m.GameOver() {
		start := rng.Intn(9)
		played := false
		for i := 0; i < 9; i++ {
			p := (start + i) % 9
			if m.Play(p/3, p%3) {
				played = true
				break
			}
		}
		if !played {
			return
		}
		m.AIMove()
	}
}

func playMinesweeper(m *minesweeper.Match, rng *rand.Rand) {
	w, h := m.Board.Width(), m.Board.Height()
	for i := 0; i < w*h*20 && !m.GameOver(); i++ {
		m.Reveal(rng.Intn(h), rng.Intn(w))
	}
}

func playSudoku(m *sudoku.Match) {
	sol := m.Solution()
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			m.Set(r, c, sol[r][c])
		}
	}
}

func playReversi(m *reversi.Match, rng *rand.Rand) {
	for !m.GameOver() {
		start := rng.Intn(64)
		progress := false
		for i := 0; i < 64; i++ {
			p := (start + i) % 64
			if m.Play(p/8, p%8) {
				progress = true
				break
			}
		}
		if m.AIMove() != nil {
			progress = true
		}
		if !progress {
			return
		}
	}
}

func playConnectFour(m *connectfour.Match, rng *rand.Rand) {
	for !m.GameOver() {
		start := rng.Intn(7)
		progress := false
		for i := 0; i < 7; i++ {
			if m.Drop((start + i) % 7) {
				progress = true
				break
			}
		}
		if m.AIMove() >= 0 {
			progress = true
		}
		if !progress {
			return
		}
	}
}

func playCheckers(m *checkers.Match, rng *rand.Rand) {
	for !m.GameOver() {
		if m.Turn == checkers.Red {
			moves := checkers.ValidMoves(m.Board, checkers.Red)
			if len(moves) == 0 {
				return
			}
			m.Play(moves[rng.Intn(len(moves))])
		} else if m.AIMove() == nil {
			return
		}
	}
}

func playChess(m *chess.Match, rng *rand.Rand) {
	for !m.GameOver() {
		if m.Turn == chess.White {
			moves := m.Moves()
			if len(moves) == 0 {
				return
			}
			m.Play(moves[rng.Intn(len(moves))])
		} else if m.AIMove() == nil {
			return
		}
	}
}

func playBackgammon(m *backgammon.Match, rng *rand.Rand) {
	for i := 0; i < 4000 && !m.GameOver(); i++ {
		if m.Turn == backgammon.White {
			moves := m.ValidMoves()
			if len(moves) == 0 {
				return
			}
			m.Play(moves[rng.Intn(len(moves))])
		} else if m.AIMove() == nil {
			return
		}
	}
}

func playHearts(m *hearts.Match, rng *rand.Rand) {
	for i := 0; i < 4000 && !m.GameOver(); i++ {
		switch m.Phase {
		case hearts.Passing:
			var pick [hearts.PassCount]cards.Card
			copy(pick[:], m.Hands[0][:hearts.PassCount])
			m.Pass(pick)
		case hearts.Playing:
			if m.Turn == 0 {
				plays := m.ValidPlays(0)
				if len(plays) == 0 {
					return
				}
				m.PlayCard(plays[rng.Intn(len(plays))])
			} else if m.AIPlay() == nil {
				return
			}
		default:
			return
		}
	}
}

func playBlackjack(m *blackjack.Match) {
	for i := 0; i < 4000 && !m.GameOver(); i++ {
		switch m.Phase {
		case blackjack.Betting:
			bet := 10
			if m.Tokens < bet {
				bet = m.Tokens
			}
			if !m.PlaceBet(bet) {
				return
			}
		case blackjack.Playing:
			// Dealer-style fixed policy: draw to 17.
			if total, _ := blackjack.HandValue(m.Player); total < 17 {
				m.Hit()
			} else {
				m.Stand()
			}
		default:
			return
		}
	}
}

func playPoker(m *poker.Match) {
	for i := 0; i < 4000 && !m.GameOver(); i++ {
		switch m.Phase {
		case poker.Betting:
			bet := 10
			if m.Tokens < bet {
				bet = m.Tokens
			}
			if !m.PlaceBet(bet) {
				return
			}
		case poker.Drawing:
			// Stand pat; the paytable decides from the deal.
			if !m.DrawCards([5]bool{true, true, true, true, true}) {
				return
			}
		default:
			return
		}
	}
}

func playFreecell(m *freecell.Match) {
	for i := 0; i < 400 && !m.GameOver(); i++ {
		progress := m.AutoMoves() > 0
		for col := 0; col < freecell.Columns; col++ {
			if m.ToFoundation(col) {
				progress = true
			}
		}
		if !progress {
			m.GiveUp()
		}
	}
}

func playKlondike(m *klondike.Match) {
	// Foundation moves plus a bounded number of draws; a random deal is
	// rarely winnable with this policy, so stall out through GiveUp.
	for i := 0; i < 400 && !m.GameOver(); i++ {
		progress := m.WasteToFoundation()
		for col := 0; col < klondike.Columns; col++ {
			if m.TableauToFoundation(col) {
				progress = true
			}
		}
		if !progress && !m.Draw() {
			m.GiveUp()
		}
	}
	if !m.GameOver() {
		m.GiveUp()
	}
}

func playBattleship(m *battleship.Match, rng *rand.Rand) {
	if !m.AutoPlace() {
		return
	}
	cells := rng.Perm(battleship.Size * battleship.Size)
	for _, p := range cells {
		if m.GameOver() {
			return
		}
		m.Fire(p/battleship.Size, p%battleship.Size)
	}
}

func play2048(m *game2048.Match, rng *rand.Rand) {
	dirs := []game2048.Direction{game2048.Left, game2048.Right, game2048.Up, game2048.Down}
	for i := 0; i < 100000 && !m.GameOver(); i++ {
		m.Swipe(dirs[rng.Intn(len(dirs))])
	}
}

func playMaze(m *maze.Match, rng *rand.Rand) {
	dirs := []maze.Direction{maze.Up, maze.Down, maze.Left, maze.Right}
	for i := 0; i < 100000 && !m.GameOver(); i++ {
		m.Move(dirs[rng.Intn(len(dirs))])
	}
	if !m.GameOver() {
		m.GiveUp()
	}
}
