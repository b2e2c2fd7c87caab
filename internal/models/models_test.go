package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusSuccess.Valid())
	assert.True(t, StatusCancel.Valid())
	assert.False(t, Status("DONE").Valid())
	assert.False(t, Status("").Valid())

	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusSuccess.Terminal())
	assert.True(t, StatusCancel.Terminal())

	assert.True(t, StatusPending.CanTransitionTo(StatusSuccess))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancel))
	assert.False(t, StatusPending.CanTransitionTo(StatusPending))
	assert.False(t, StatusSuccess.CanTransitionTo(StatusCancel))
	assert.False(t, StatusCancel.CanTransitionTo(StatusSuccess))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Pending", StatusPending.Label())
	assert.Equal(t, "Completed", StatusSuccess.Label())
	assert.Equal(t, "Cancelled", StatusCancel.Label())
	assert.Equal(t, "ODD", Status("ODD").Label())
}

func TestJobType(t *testing.T) {
	for _, j := range []JobType{JobTypeSend, JobTypeReceive, JobTypeSendReceive, JobTypeBuy, JobTypeSell, JobTypeDeposit, JobTypeOther} {
		assert.True(t, j.Valid(), string(j))
	}
	assert.False(t, JobType("teleport").Valid())
}

func TestExportFormat(t *testing.T) {
	assert.True(t, FormatDocument.Valid())
	assert.True(t, FormatSpreadsheet.Valid())
	assert.False(t, ExportFormat("csv").Valid())

	assert.Equal(t, "pdf", FormatDocument.Ext())
	assert.Equal(t, "xlsx", FormatSpreadsheet.Ext())
	assert.Equal(t, "pdf", FormatDocument.StorePath())
	assert.Equal(t, "excel", FormatSpreadsheet.StorePath())
}

func TestStatusFacets(t *testing.T) {
	facets := StatusFacets()
	assert.Len(t, facets, 3)
	assert.Equal(t, StatusPending, facets[0].Value)
	assert.Equal(t, "Pending", facets[0].Label)
	assert.Equal(t, StatusSuccess, facets[1].Value)
	assert.Equal(t, StatusCancel, facets[2].Value)
}
