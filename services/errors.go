package services

import "errors"

var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	ErrUserNotFound         = errors.New("user not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrMemberNotFound       = errors.New("team member not found")
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrInviteNotFound       = errors.New("invite not found")

	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrUserNicknameConflict = errors.New("nickname is already in use")
	ErrTeamNameConflict     = errors.New("team name is already in use")
	ErrMemberConflict       = errors.New("user is already on this team")
	ErrRegistrationConflict = errors.New("team is already registered for this tournament")
	ErrInviteConflict       = errors.New("recipient already has a pending invite for this team")

	ErrTeamFull                = errors.New("team already has the maximum number of members")
	ErrCannotRemoveOwner       = errors.New("the team owner cannot be removed")
	ErrTeamGameLocked          = errors.New("team game cannot change after registering for a tournament")
	ErrTournamentGameLocked    = errors.New("tournament game cannot change while teams are registered")
	ErrTeamHasRegistrations    = errors.New("team has active tournament registrations")
	ErrUserOwnsRegisteredTeam  = errors.New("user owns a team with active tournament registrations")
	ErrTournamentFull          = errors.New("tournament has no free slots")
	ErrRegistrationNotOpen     = errors.New("tournament registration is not open")
	ErrGameMismatch            = errors.New("team game does not match the tournament game")
	ErrNoActiveRegistration    = errors.New("team has no active registration for this tournament")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrAlreadyPaid             = errors.New("slot is already paid for this tournament")
	ErrPaymentInProgress       = errors.New("team has a pending payment for this tournament")
	ErrInviteAlreadyResolved   = errors.New("invite has already been answered")
	ErrSimulationDisabled      = errors.New("payment simulation is disabled in production")
	ErrCapacityBelowRegistered = errors.New("max teams cannot be lower than the number of registered teams")
	ErrTournamentInvalidDates  = errors.New("tournament end date must be after start date")
	ErrTournamentInvalidStatus = errors.New("invalid tournament status provided")
	ErrStorageUnavailable      = errors.New("file storage is not configured")
	ErrUnsupportedContentType  = errors.New("unsupported image content type")
	ErrCannotDeleteSelf        = errors.New("administrators cannot delete their own account")

	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
	ErrAdminRequired        = errors.New("administrator privileges required")
	ErrOwnerActionForbidden = errors.New("only the team owner can perform this action")
	ErrNotInviteRecipient   = errors.New("only the invite recipient can answer it")
)
