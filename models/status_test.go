package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shomrim/patrol-cad-client/models"
)

func TestCanonicalStatusFoldsAliases(t *testing.T) {
	assert.Equal(t, models.StatusPending, models.CanonicalStatus("created"))
	assert.Equal(t, models.StatusStarted, models.CanonicalStatus("assigned"))
	assert.Equal(t, models.StatusPending, models.CanonicalStatus(models.StatusPending))
	assert.Equal(t, models.StatusOnAir, models.CanonicalStatus(models.StatusOnAir))
	assert.Equal(t, "bogus", models.CanonicalStatus("bogus"))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"pending", "created", "started", "assigned", "onair", "completed", "cancelled"} {
		assert.True(t, models.ValidStatus(s), s)
	}
	assert.False(t, models.ValidStatus("bogus"))
	assert.False(t, models.ValidStatus(""))
}

func TestCloneIsIndependent(t *testing.T) {
	original := &models.Incident{
		ID:            "CAD000001",
		AssignedUsers: []string{"Yehuda Filip"},
		InvitedUsers:  []string{"Sarah Levy"},
		History:       []models.HistoryEntry{{Action: "Created", User: "Yehuda Filip"}},
	}

	clone := original.Clone()
	clone.AssignedUsers = append(clone.AssignedUsers, "David Cohen")
	clone.InvitedUsers = nil
	clone.AppendHistory("Started", "Yehuda Filip")

	assert.Equal(t, []string{"Yehuda Filip"}, original.AssignedUsers)
	assert.Equal(t, []string{"Sarah Levy"}, original.InvitedUsers)
	assert.Len(t, original.History, 1)
}
