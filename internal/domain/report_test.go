package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportStatus_Valid(t *testing.T) {
	assert.True(t, ReportStatusPending.Valid())
	assert.True(t, ReportStatusInProgress.Valid())
	assert.True(t, ReportStatusResolved.Valid())
	assert.False(t, ReportStatus("closed").Valid())
	assert.False(t, ReportStatus("").Valid())
}

func TestReportPriority_Valid(t *testing.T) {
	assert.True(t, ReportPriorityLow.Valid())
	assert.True(t, ReportPriorityMedium.Valid())
	assert.True(t, ReportPriorityHigh.Valid())
	assert.False(t, ReportPriority("urgent").Valid())
}

func TestReportCategory_Valid(t *testing.T) {
	assert.Len(t, Categories, 14)
	for _, category := range Categories {
		assert.True(t, category.Valid(), "category %q should be valid", category)
	}
	assert.True(t, ReportCategory("Other").Valid())
	assert.False(t, ReportCategory("Alien Invasion").Valid())
	assert.False(t, ReportCategory("").Valid())
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleCitizen.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superuser").Valid())
}
