package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil extract service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingExtractService)
	})

	t.Run("extract only creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Extract: &mockExtractService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("with history creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Extract: &mockExtractService{}, History: &mockHistoryService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingExtractService)
	assert.NoError(t, (&Ports{Extract: &mockExtractService{}}).Validate())
}

func TestInstructions(t *testing.T) {
	t.Run("extract only", func(t *testing.T) {
		got := instructions(&Ports{Extract: &mockExtractService{}})
		assert.Contains(t, got, "extract_form")
		assert.NotContains(t, got, "list_extractions")
	})

	t.Run("with history", func(t *testing.T) {
		got := instructions(&Ports{Extract: &mockExtractService{}, History: &mockHistoryService{}})
		assert.Contains(t, got, "list_extractions")
		assert.Contains(t, got, "formmap://extractions/{extractionId}")
	})
}
