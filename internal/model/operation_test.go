package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deckgen/deckgen/internal/model"
)

func TestParseOperationState(t *testing.T) {
	tests := map[string]struct {
		status   string
		expState model.OperationState
	}{
		"Completed should map to the completed state": {
			status:   "completed",
			expState: model.OperationStateCompleted,
		},

		"Partial should map to the partial state": {
			status:   "partial",
			expState: model.OperationStatePartial,
		},

		"Failed should map to the failed state": {
			status:   "failed",
			expState: model.OperationStateFailed,
		},

		"Known non-terminal labels should map to ongoing": {
			status:   "processing",
			expState: model.OperationStateOngoing,
		},

		"Unknown labels should map to ongoing": {
			status:   "warming-up",
			expState: model.OperationStateOngoing,
		},

		"Empty status should map to ongoing": {
			status:   "",
			expState: model.OperationStateOngoing,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expState, model.ParseOperationState(test.status))
		})
	}
}

func TestOperationStateTerminal(t *testing.T) {
	tests := map[string]struct {
		state       model.OperationState
		expTerminal bool
	}{
		"Ongoing is not terminal":  {state: model.OperationStateOngoing, expTerminal: false},
		"Completed is terminal":    {state: model.OperationStateCompleted, expTerminal: true},
		"Partial is terminal":      {state: model.OperationStatePartial, expTerminal: true},
		"Failed is terminal":       {state: model.OperationStateFailed, expTerminal: true},
		"Zero value is not terminal": {state: model.OperationState(""), expTerminal: false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expTerminal, test.state.Terminal())
		})
	}
}
