package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeUnknown, "unknown"},
		{OutcomePassed, "passed"},
		{OutcomeFailed, "failed"},
		{Outcome(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.outcome.String())
	}
}

func TestOutcomeFromExitCode(t *testing.T) {
	assert.Equal(t, OutcomePassed, OutcomeFromExitCode(0))
	assert.Equal(t, OutcomeFailed, OutcomeFromExitCode(1))
	assert.Equal(t, OutcomeFailed, OutcomeFromExitCode(-1))
	assert.True(t, OutcomeFromExitCode(0).IsSuccess())
	assert.False(t, OutcomeFromExitCode(2).IsSuccess())
}

func TestParseOutcome(t *testing.T) {
	tests := []struct {
		in   string
		want Outcome
	}{
		{"passed", OutcomePassed},
		{"PASS", OutcomePassed},
		{" success ", OutcomePassed},
		{"failed", OutcomeFailed},
		{"Failure", OutcomeFailed},
		{"", OutcomeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutcome(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseOutcome("maybe")
	assert.Error(t, err)
}
