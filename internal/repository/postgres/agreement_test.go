package postgres

import (
	"testing"

	"github.com/papertrails/papertrails/internal/domain/agreement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachAssignedUsers(t *testing.T) {
	lease := &agreement.Agreement{ID: "agr_lease"}
	catering := &agreement.Agreement{ID: "agr_catering"}
	parking := &agreement.Agreement{ID: "agr_parking"}

	attachAssignedUsers([]*agreement.Agreement{lease, catering, parking}, []assignedUserRow{
		{AgreementID: "agr_catering", UserID: "user_a"},
		{AgreementID: "agr_lease", UserID: "user_b"},
		{AgreementID: "agr_lease", UserID: "user_c"},
	})

	assert.Equal(t, []string{"user_b", "user_c"}, lease.AssignedUserIDs)
	assert.Equal(t, []string{"user_a"}, catering.AssignedUserIDs)
	require.NotNil(t, parking.AssignedUserIDs)
	assert.Empty(t, parking.AssignedUserIDs)
}
