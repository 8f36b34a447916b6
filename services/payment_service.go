package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/esports-hub/models"
	"github.com/Dosada05/esports-hub/notify"
	"github.com/Dosada05/esports-hub/pix"
	"github.com/Dosada05/esports-hub/repositories"
	"github.com/rs/zerolog"
)

const maxReferenceAttempts = 3

type PaymentConfig struct {
	PixKey       string
	MerchantName string
	MerchantCity string
	TTL          time.Duration
	// AutoApprove approves the PENDING registration when its payment is confirmed.
	AutoApprove bool
	// Development enables the owner-side simulated approval.
	Development bool
}

type PaymentService interface {
	// ReserveSlot returns the team's open payment for the tournament or
	// creates one. A nil tournamentID selects the latest active registration.
	ReserveSlot(ctx context.Context, actor *models.User, teamID int, tournamentID *int) (*models.Payment, error)
	Confirm(ctx context.Context, actor *models.User, paymentID int) (*models.Payment, error)
	Reject(ctx context.Context, actor *models.User, paymentID int) (*models.Payment, error)
	Cancel(ctx context.Context, actor *models.User, paymentID int) (*models.Payment, error)
	SimulateApproval(ctx context.Context, actor *models.User, teamID int) (*models.Payment, error)
	ExpireStale(ctx context.Context, now time.Time) (int, error)
	List(ctx context.Context, actor *models.User, filter models.PaymentFilter) ([]models.Payment, int, error)
}

type paymentService struct {
	paymentRepo      repositories.PaymentRepository
	registrationRepo repositories.RegistrationRepository
	tournamentRepo   repositories.TournamentRepository
	teamRepo         repositories.TeamRepository
	tx               repositories.Transactor
	authz            Authorizer
	events           notify.Publisher
	cfg              PaymentConfig
	logger           zerolog.Logger
	now              func() time.Time
	newTxID          func() (string, error)
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	registrationRepo repositories.RegistrationRepository,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	tx repositories.Transactor,
	authz Authorizer,
	events notify.Publisher,
	cfg PaymentConfig,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		paymentRepo:      paymentRepo,
		registrationRepo: registrationRepo,
		tournamentRepo:   tournamentRepo,
		teamRepo:         teamRepo,
		tx:               tx,
		authz:            authz,
		events:           events,
		cfg:              cfg,
		logger:           logger,
		now:              time.Now,
		newTxID:          pix.NewTxID,
	}
}

func (s *paymentService) publish(p *models.Payment, eventType string) {
	s.events.Publish(eventType, p, notify.TeamRoom(p.TeamID), notify.AdminRoom)
}

func (s *paymentService) ReserveSlot(ctx context.Context, actor *models.User, teamID int, tournamentID *int) (*models.Payment, error) {
	team, err := getTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}
	if err := requireTeamOwner(s.authz, actor, team); err != nil {
		return nil, err
	}

	reg, err := s.activeRegistration(ctx, teamID, tournamentID)
	if err != nil {
		return nil, err
	}
	tournament, err := getTournament(ctx, s.tournamentRepo, reg.TournamentID)
	if err != nil {
		return nil, err
	}

	var payment *models.Payment
	created := false
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		// Serialises concurrent reservations for the same team.
		if _, err := s.teamRepo.LockByID(ctx, exec, teamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return err
		}

		_, err := s.paymentRepo.FindByTeamTournamentStatus(ctx, exec, teamID, tournament.ID, models.PaymentPaid)
		if err == nil {
			return ErrAlreadyPaid
		}
		if !errors.Is(err, repositories.ErrPaymentNotFound) {
			return err
		}

		pending, err := s.paymentRepo.FindByTeamTournamentStatus(ctx, exec, teamID, tournament.ID, models.PaymentPending)
		switch {
		case err == nil:
			if s.now().Before(pending.ExpiresAt) {
				payment = pending
				return nil
			}
			if err := s.paymentRepo.TransitionStatus(ctx, exec, pending.ID, models.PaymentPending, models.PaymentExpired, nil); err != nil &&
				!errors.Is(err, repositories.ErrPaymentStatusChanged) {
				return err
			}
		case !errors.Is(err, repositories.ErrPaymentNotFound):
			return err
		}

		payment, err = s.createPayment(ctx, exec, teamID, tournament)
		if err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	payment.IsDevelopment = s.cfg.Development
	payment.Tournament = tournament
	if created {
		s.publish(payment, notify.EventPaymentCreated)
	}
	return payment, nil
}

func (s *paymentService) activeRegistration(ctx context.Context, teamID int, tournamentID *int) (*models.Registration, error) {
	var (
		reg *models.Registration
		err error
	)
	if tournamentID == nil {
		reg, err = s.registrationRepo.LatestActiveForTeam(ctx, teamID)
	} else {
		reg, err = s.registrationRepo.GetByTeamAndTournament(ctx, nil, teamID, *tournamentID)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrNoActiveRegistration
		}
		return nil, err
	}
	if reg.Status == models.RegistrationRejected {
		return nil, ErrNoActiveRegistration
	}
	return reg, nil
}

func (s *paymentService) createPayment(ctx context.Context, exec repositories.SQLExecutor, teamID int, tournament *models.Tournament) (*models.Payment, error) {
	now := s.now().UTC()
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		txid, err := s.newTxID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate payment reference: %w", err)
		}
		code, err := pix.Payload{
			Key:          s.cfg.PixKey,
			MerchantName: s.cfg.MerchantName,
			MerchantCity: s.cfg.MerchantCity,
			AmountCents:  tournament.PriceCents,
			TxID:         txid,
		}.Encode()
		if err != nil {
			return nil, fmt.Errorf("failed to render pix payload: %w", err)
		}

		p := &models.Payment{
			TeamID:       teamID,
			TournamentID: tournament.ID,
			AmountCents:  tournament.PriceCents,
			Status:       models.PaymentPending,
			Reference:    txid,
			PixCode:      code,
			ExpiresAt:    now.Add(s.cfg.TTL),
		}
		err = s.paymentRepo.Create(ctx, exec, p)
		switch {
		case err == nil:
			return p, nil
		case errors.Is(err, repositories.ErrPaymentReferenceConflict):
			continue
		case errors.Is(err, repositories.ErrPaymentPendingConflict):
			return nil, ErrPaymentInProgress
		case errors.Is(err, repositories.ErrPaymentPaidConflict):
			return nil, ErrAlreadyPaid
		default:
			return nil, fmt.Errorf("failed to create payment: %w", err)
		}
	}
	return nil, fmt.Errorf("failed to allocate a unique payment reference after %d attempts", maxReferenceAttempts)
}

func (s *paymentService) getPayment(ctx context.Context, paymentID int) (*models.Payment, error) {
	p, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment %d: %w", paymentID, err)
	}
	return p, nil
}

func (s *paymentService) Confirm(ctx context.Context, actor *models.User, paymentID int) (*models.Payment, error) {
	if err := requireAdmin(s.authz, actor); err != nil {
		return nil, err
	}
	p, err := s.getPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, p, models.PaymentPaid)
}

func (s *paymentService) Reject(ctx context.Context, actor *models.User, paymentID int) (*models.Payment, error) {
	if err := requireAdmin(s.authz, actor); err != nil {
		return nil, err
	}
	p, err := s.getPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, p, models.PaymentRejected)
}

func (s *paymentService) Cancel(ctx context.Context, actor *models.User, paymentID int) (*models.Payment, error) {
	p, err := s.getPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	team, err := getTeam(ctx, s.teamRepo, p.TeamID)
	if err != nil {
		return nil, err
	}
	if err := requireTeamOwner(s.authz, actor, team); err != nil {
		return nil, err
	}
	return s.transition(ctx, p, models.PaymentCancelled)
}

func (s *paymentService) SimulateApproval(ctx context.Context, actor *models.User, teamID int) (*models.Payment, error) {
	if !s.cfg.Development {
		return nil, ErrSimulationDisabled
	}
	team, err := getTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}
	if err := requireTeamOwner(s.authz, actor, team); err != nil {
		return nil, err
	}

	p, err := s.paymentRepo.FindPendingByTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return s.transition(ctx, p, models.PaymentPaid)
}

// transition applies a one-way status change. Asking for the status the
// payment already has is a no-op. A pending payment past its deadline is
// expired on the spot instead of being moved to target.
func (s *paymentService) transition(ctx context.Context, p *models.Payment, target models.PaymentStatus) (*models.Payment, error) {
	if p.Status == target {
		p.IsDevelopment = s.cfg.Development
		return p, nil
	}
	if !p.Status.CanTransition(target) {
		return nil, fmt.Errorf("%w: payment is %s", ErrInvalidStatusTransition, p.Status)
	}
	if p.Status == models.PaymentPending && !s.now().Before(p.ExpiresAt) {
		if err := s.expire(ctx, p); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: payment expired at %s", ErrInvalidStatusTransition, p.ExpiresAt.UTC().Format(time.RFC3339))
	}

	var paidAt *time.Time
	if target == models.PaymentPaid {
		now := s.now().UTC()
		paidAt = &now
	}

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.paymentRepo.TransitionStatus(ctx, exec, p.ID, models.PaymentPending, target, paidAt); err != nil {
			switch {
			case errors.Is(err, repositories.ErrPaymentStatusChanged):
				return fmt.Errorf("%w: payment changed concurrently", ErrInvalidStatusTransition)
			case errors.Is(err, repositories.ErrPaymentPaidConflict):
				return ErrAlreadyPaid
			}
			return err
		}
		if target == models.PaymentPaid && s.cfg.AutoApprove {
			return s.approveRegistration(ctx, exec, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.Status = target
	p.PaidAt = paidAt
	p.IsDevelopment = s.cfg.Development
	s.publish(p, notify.EventPaymentUpdated)
	return p, nil
}

func (s *paymentService) expire(ctx context.Context, p *models.Payment) error {
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.paymentRepo.TransitionStatus(ctx, exec, p.ID, models.PaymentPending, models.PaymentExpired, nil)
	})
	if errors.Is(err, repositories.ErrPaymentStatusChanged) {
		return nil
	}
	if err != nil {
		return err
	}
	p.Status = models.PaymentExpired
	s.publish(p, notify.EventPaymentUpdated)
	return nil
}

func (s *paymentService) approveRegistration(ctx context.Context, exec repositories.SQLExecutor, p *models.Payment) error {
	reg, err := s.registrationRepo.GetByTeamAndTournament(ctx, exec, p.TeamID, p.TournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil
		}
		return err
	}
	if reg.Status != models.RegistrationPending {
		return nil
	}
	err = s.registrationRepo.UpdateStatus(ctx, exec, reg.ID, models.RegistrationPending, models.RegistrationApproved)
	if err != nil && !errors.Is(err, repositories.ErrRegistrationStatusChanged) {
		return err
	}
	return nil
}

func (s *paymentService) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.paymentRepo.ExpireStale(ctx, now)
	if err != nil {
		return 0, err
	}
	for i := range expired {
		s.publish(&expired[i], notify.EventPaymentUpdated)
	}
	if len(expired) > 0 {
		s.logger.Info().Int("count", len(expired)).Msg("expired stale payments")
	}
	return len(expired), nil
}

func (s *paymentService) List(ctx context.Context, actor *models.User, filter models.PaymentFilter) ([]models.Payment, int, error) {
	if err := requireAdmin(s.authz, actor); err != nil {
		return nil, 0, err
	}
	return s.paymentRepo.List(ctx, filter)
}
