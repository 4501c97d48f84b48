package entity

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
)

const (
	DefaultBoardSize = 5

	EmptyCell = ""
)

var (
	ErrOutOfBounds  = errors.New("cell is out of bounds")
	ErrCellOccupied = errors.New("cell is already marked")
	ErrEmptyLabel   = errors.New("move has no label")
)

// BoardState - size x size grid of cells. A cell label goes from empty to a player's label at most once
// until the whole board is reset.
type BoardState struct {
	size  int
	cells [][]Move
}

type boardStateJSON struct {
	Size  int      `json:"size"`
	Cells [][]Move `json:"cells"`
}

func NewBoardState(size int) (*BoardState, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: board size %d", apperror.ErrInvalidConfiguration, size)
	}

	board := &BoardState{size: size}
	board.Reset()

	return board, nil
}

// Reset - marks every cell as unplayed, keeping the board size.
func (that *BoardState) Reset() {
	that.cells = make([][]Move, that.size)
	for row := range that.cells {
		that.cells[row] = make([]Move, that.size)
		for col := range that.cells[row] {
			that.cells[row][col] = Move{Row: row, Col: col}
		}
	}
}

func (that *BoardState) Size() int {
	return that.size
}

func (that *BoardState) InBounds(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

func (that *BoardState) IsValidMove(move Move) bool {
	return that.checkMove(move) == nil
}

// ApplyMove - claims the target cell with move.Label. Rejected moves leave the board untouched.
//
// It is narrower than IsValidMove on purpose: a move with an empty label passes IsValidMove but is
// rejected here with ErrEmptyLabel, since writing "" would leave the cell unplayed and let it be
// claimed twice.
func (that *BoardState) ApplyMove(move Move) error {
	if err := that.checkMove(move); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, err)
	}

	if move.Label == EmptyCell {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, ErrEmptyLabel)
	}

	that.cells[move.Row][move.Col].Label = move.Label

	return nil
}

func (that *BoardState) checkMove(move Move) error {
	if !that.InBounds(move.Row, move.Col) {
		return fmt.Errorf("%w: row %d, col %d", ErrOutOfBounds, move.Row, move.Col)
	}

	if that.cells[move.Row][move.Col].IsPlayed() {
		return ErrCellOccupied
	}

	return nil
}

// Cell - returns the cell at (row, col); ok is false when the position is off the board.
func (that *BoardState) Cell(row, col int) (Move, bool) {
	if !that.InBounds(row, col) {
		return Move{}, false
	}

	return that.cells[row][col], true
}

// Number - 1-based row-major number printed on a cell.
func (that *BoardState) Number(row, col int) int {
	return row*that.size + col + 1
}

func (that *BoardState) MarkedCount() int {
	count := 0
	for _, row := range that.cells {
		for _, cell := range row {
			if cell.IsPlayed() {
				count++
			}
		}
	}

	return count
}

func (that *BoardState) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardStateJSON{Size: that.size, Cells: that.cells})
}

func (that *BoardState) UnmarshalJSON(data []byte) error {
	var raw boardStateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	if raw.Size <= 0 || len(raw.Cells) != raw.Size {
		return fmt.Errorf("%w: board size %d with %d rows", apperror.ErrInvalidConfiguration, raw.Size, len(raw.Cells))
	}

	for row := range raw.Cells {
		if len(raw.Cells[row]) != raw.Size {
			return fmt.Errorf("%w: row %d has %d cells", apperror.ErrInvalidConfiguration, row, len(raw.Cells[row]))
		}
	}

	// positions come from the grid itself, not from what was stored in each cell
	for row := range raw.Cells {
		for col := range raw.Cells[row] {
			raw.Cells[row][col].Row = row
			raw.Cells[row][col].Col = col
		}
	}

	that.size = raw.Size
	that.cells = raw.Cells

	return nil
}
