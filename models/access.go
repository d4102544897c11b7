package models

import "time"

const (
	ApplicationAccessTable = "itam_application_access"
	GitHubAccessTable      = "itam_github_access"
)

// Grant lifecycle. Revocation is logical so the audit row survives.
const (
	AccessActive  = "active"
	AccessRevoked = "revoked"
)

// ApplicationAccess is one grant of an application to a user. At most one
// active row may exist per (user_name, application_name); a partial unique
// index in db.Migrate backs the service-level pre-check.
type ApplicationAccess struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserName        string     `gorm:"size:100;index;not null" json:"userName"`
	ApplicationName string     `gorm:"size:100;index;not null" json:"applicationName"`
	AccessLevel     string     `gorm:"size:50;index;not null" json:"accessLevel"`
	AssignDate      time.Time  `gorm:"type:date;not null" json:"assignDate"`
	RemoveDate      *time.Time `gorm:"type:date" json:"removeDate,omitempty"`
	Status          string     `gorm:"size:20;index;not null;default:'active'" json:"status"`
	Remarks         string     `gorm:"type:text" json:"remarks,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (ApplicationAccess) TableName() string { return ApplicationAccessTable }

func (a *ApplicationAccess) IsActive(today time.Time) bool {
	return a.Status == AccessActive && (a.RemoveDate == nil || !a.RemoveDate.Before(today))
}

func (a *ApplicationAccess) DaysSinceAssigned(today time.Time) int {
	return int(today.Sub(a.AssignDate).Hours() / 24)
}

func (a *ApplicationAccess) Revoke(remarks string, today time.Time) {
	a.Status = AccessRevoked
	a.RemoveDate = &today
	if remarks != "" {
		a.Remarks = remarks
	}
}

func (a *ApplicationAccess) Reactivate(remarks string) {
	a.Status = AccessActive
	a.RemoveDate = nil
	if remarks != "" {
		a.Remarks = remarks
	}
}

// GitHubAccess is one grant of a repository to a user, scoped by
// organization. Same lifecycle as ApplicationAccess with the natural key
// widened to the (user, org, repo) triple.
type GitHubAccess struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserName         string     `gorm:"size:100;index;not null" json:"userName"`
	OrganizationName string     `gorm:"size:100;index;not null" json:"organizationName"`
	RepoName         string     `gorm:"size:100;index;not null" json:"repoName"`
	AccessType       string     `gorm:"size:50;index;not null" json:"accessType"`
	AssignDate       time.Time  `gorm:"type:date;not null" json:"assignDate"`
	RemoveDate       *time.Time `gorm:"type:date" json:"removeDate,omitempty"`
	Status           string     `gorm:"size:20;index;not null;default:'active'" json:"status"`
	Remarks          string     `gorm:"type:text" json:"remarks,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func (GitHubAccess) TableName() string { return GitHubAccessTable }

func (g *GitHubAccess) FullRepoName() string {
	return g.OrganizationName + "/" + g.RepoName
}

func (g *GitHubAccess) IsActive(today time.Time) bool {
	return g.Status == AccessActive && (g.RemoveDate == nil || !g.RemoveDate.Before(today))
}

func (g *GitHubAccess) DaysSinceAssigned(today time.Time) int {
	return int(today.Sub(g.AssignDate).Hours() / 24)
}

func (g *GitHubAccess) Revoke(remarks string, today time.Time) {
	g.Status = AccessRevoked
	g.RemoveDate = &today
	if remarks != "" {
		g.Remarks = remarks
	}
}

func (g *GitHubAccess) Reactivate(remarks string) {
	g.Status = AccessActive
	g.RemoveDate = nil
	if remarks != "" {
		g.Remarks = remarks
	}
}
