package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionBudget(t *testing.T) {
	session := NewSession(3)
	require.Equal(t, 0, session.Calls())
	require.False(t, session.BudgetExhausted())

	session.RecordCall()
	session.RecordCall()
	require.Equal(t, 2, session.Calls())
	require.False(t, session.BudgetExhausted())

	session.RecordCall()
	require.True(t, session.BudgetExhausted())

	// Tally keeps counting past the threshold.
	session.RecordCall()
	require.Equal(t, 4, session.Calls())
	require.True(t, session.BudgetExhausted())
}
