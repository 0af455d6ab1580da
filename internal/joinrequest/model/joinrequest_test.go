package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAction_Valid(t *testing.T) {
	assert.True(t, ActionAccept.Valid())
	assert.True(t, ActionReject.Valid())
	assert.False(t, Action("approve").Valid())
	assert.False(t, Action("").Valid())
}

func TestJoinRequest_BeforeCreate(t *testing.T) {
	r := &JoinRequest{}
	assert.NoError(t, r.BeforeCreate(nil))
	assert.Len(t, r.ID, 36)

	kept := &JoinRequest{ID: "fixed"}
	assert.NoError(t, kept.BeforeCreate(nil))
	assert.Equal(t, "fixed", kept.ID)
}

func TestTeamIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, TeamIDs([]JoinRequest{{TeamID: "a"}, {TeamID: "b"}}))
	assert.Equal(t, []string{}, TeamIDs(nil))
}
