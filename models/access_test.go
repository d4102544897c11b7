package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationAccessLifecycle(t *testing.T) {
	g := ApplicationAccess{
		UserName:        "john.doe",
		ApplicationName: "Jira",
		AccessLevel:     "Read",
		AssignDate:      date(2024, 1, 1),
		Status:          AccessActive,
	}
	today := date(2024, 3, 1)

	assert.True(t, g.IsActive(today))
	assert.Equal(t, 60, g.DaysSinceAssigned(today))

	g.Revoke("left the team", today)
	assert.Equal(t, AccessRevoked, g.Status)
	require.NotNil(t, g.RemoveDate)
	assert.False(t, g.IsActive(today.AddDate(0, 0, 1)))

	g.Reactivate("rejoined")
	assert.Equal(t, AccessActive, g.Status)
	assert.Nil(t, g.RemoveDate)
	assert.Equal(t, "rejoined", g.Remarks)
}

func TestGitHubAccessFullRepoName(t *testing.T) {
	g := GitHubAccess{OrganizationName: "acme", RepoName: "billing-api"}
	assert.Equal(t, "acme/billing-api", g.FullRepoName())
}

func TestGitHubAccessLifecycle(t *testing.T) {
	g := GitHubAccess{
		UserName:         "jane.roe",
		OrganizationName: "acme",
		RepoName:         "billing-api",
		AccessType:       "Write",
		AssignDate:       date(2024, 5, 1),
		Status:           AccessActive,
	}
	assert.True(t, g.IsActive(date(2024, 5, 2)))

	g.Revoke("", date(2024, 5, 10))
	assert.Equal(t, AccessRevoked, g.Status)
	assert.False(t, g.IsActive(date(2024, 5, 11)))
}
