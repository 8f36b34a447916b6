package services

import "github.com/Dosada05/esports-hub/models"

// Authorizer decides which elevated operations a user may perform.
type Authorizer interface {
	IsAdmin(user *models.User) bool
	CanManageTeam(user *models.User, team *models.Team) bool
}

type roleAuthorizer struct{}

// NewRoleAuthorizer returns an Authorizer backed by the stored user role.
func NewRoleAuthorizer() Authorizer {
	return roleAuthorizer{}
}

func (roleAuthorizer) IsAdmin(user *models.User) bool {
	return user.IsAdmin()
}

func (roleAuthorizer) CanManageTeam(user *models.User, team *models.Team) bool {
	return user != nil && team != nil && team.OwnerID == user.ID
}

func requireAdmin(authz Authorizer, actor *models.User) error {
	if actor == nil {
		return ErrAuthenticationFailed
	}
	if !authz.IsAdmin(actor) {
		return ErrAdminRequired
	}
	return nil
}

func requireTeamOwner(authz Authorizer, actor *models.User, team *models.Team) error {
	if actor == nil {
		return ErrAuthenticationFailed
	}
	if !authz.CanManageTeam(actor, team) {
		return ErrOwnerActionForbidden
	}
	return nil
}

// requireOwnerOrAdmin lets administrators act on any team.
func requireOwnerOrAdmin(authz Authorizer, actor *models.User, team *models.Team) error {
	if actor == nil {
		return ErrAuthenticationFailed
	}
	if authz.CanManageTeam(actor, team) || authz.IsAdmin(actor) {
		return nil
	}
	return ErrOwnerActionForbidden
}
