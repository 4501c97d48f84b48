package entity

import (
	"testing"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	t.Run("Creates board and turn cycle", func(t *testing.T) {
		session, err := NewSession("abc", DefaultPlayers(), DefaultBoardSize)
		require.NoError(t, err)

		assert.Equal(t, "abc", session.ID)
		assert.Equal(t, DefaultBoardSize, session.Board.Size())
		assert.Equal(t, "You", session.CurrentPlayer().Label)
	})

	t.Run("Bad board size", func(t *testing.T) {
		_, err := NewSession("abc", DefaultPlayers(), 0)

		require.ErrorIs(t, err, apperror.ErrInvalidConfiguration)
	})

	t.Run("No players", func(t *testing.T) {
		_, err := NewSession("abc", nil, DefaultBoardSize)

		require.ErrorIs(t, err, apperror.ErrInvalidConfiguration)
	})
}
