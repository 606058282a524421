package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/formmap/internal/core/ports/driving"
)

func TestSubmitCmd(t *testing.T) {
	env := setupTestServices(t)
	path := initPlan(t)
	env.submit.report = &driving.SubmitReport{Endpoint: "https://example.com/formResponse", Total: 3, Succeeded: 3}

	out, err := execute(t, "submit", path, "-n", "3")

	require.NoError(t, err)
	assert.Equal(t, 3, env.submit.gotTotal)
	assert.Contains(t, out, "Posted 3 responses to https://example.com/formResponse: 3 accepted, 0 failed")
}

func TestSubmitCmd_ReportsFailures(t *testing.T) {
	env := setupTestServices(t)
	path := initPlan(t)
	env.submit.report = &driving.SubmitReport{Total: 4, Succeeded: 3, Failed: 1}

	out, err := execute(t, "submit", path, "-n", "4", "--quiet")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 4 responses failed")
	assert.Contains(t, out, "3 accepted, 1 failed")
}

func TestSubmitCmd_Cancelled(t *testing.T) {
	env := setupTestServices(t)
	path := initPlan(t)
	env.submit.report = &driving.SubmitReport{Total: 1, Succeeded: 1}
	env.submit.err = context.Canceled

	out, err := execute(t, "submit", path, "-n", "5")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, out, "Posted 1 responses")
}

func TestSubmitCmd_HasCountFlag(t *testing.T) {
	flag := submitCmd.Flags().Lookup("count")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
}
