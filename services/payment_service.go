package services

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/tutoria-app/backend/models"
	"github.com/tutoria-app/backend/payments"
	"gorm.io/gorm"
)

// FallbackAmount is the demo amount used when a session carries neither
// a fixed price nor a usable hourly rate.
const FallbackAmount int64 = 50000

// PaymentService runs both settlement protocols: the tutor-initiated
// payout (requested -> approved -> paid, manager-gated) and the
// student-facing checkout against the provider adapter. Every status
// move is a conditional update on the prior status, so the sequence
// never regresses even under racing calls.
type PaymentService struct {
	DB       *gorm.DB
	Sessions *SessionService
	Earnings *EarningsService
	Adapter  payments.Adapter
}

func NewPaymentService(db *gorm.DB, sessions *SessionService, earnings *EarningsService, adapter payments.Adapter) *PaymentService {
	return &PaymentService{DB: db, Sessions: sessions, Earnings: earnings, Adapter: adapter}
}

func (s *PaymentService) RequestPayout(tutorID uuid.UUID, sessionID uuid.UUID) (*models.Payment, error) {
	session, err := s.Sessions.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Status != models.SessionDone {
		return nil, ErrSessionNotDone
	}
	if session.TutorID != nil && *session.TutorID != tutorID {
		return nil, ErrNotYourSession
	}

	payment := models.Payment{
		SessionID:   session.ID,
		TutorID:     session.TutorID,
		RequesterID: tutorID,
		Amount:      CalcAmount(session),
		Currency:    session.Currency,
		Type:        models.PaymentTypePayout,
		Status:      models.PaymentRequested,
	}
	if err := s.DB.Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentService) ApprovePayout(managerID uuid.UUID, paymentID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := s.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.Status != models.PaymentRequested {
		return nil, ErrPaymentNotRequested
	}

	now := time.Now()
	res := s.DB.Model(&models.Payment{}).
		Where("id = ? AND status = ?", paymentID, models.PaymentRequested).
		Updates(map[string]interface{}{
			"status":      models.PaymentApproved,
			"approved_by": managerID,
			"approved_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrPaymentNotRequested
	}

	payment.Status = models.PaymentApproved
	payment.ApprovedBy = &managerID
	payment.ApprovedAt = &now
	return &payment, nil
}

// MarkPaid credits the earnings ledger and then flips the payout to
// paid, in one transaction. Crediting runs first: if the flip fails the
// payout stays approved and a re-invoke is safe because crediting is
// idempotent on the payment id.
func (s *PaymentService) MarkPaid(managerID uuid.UUID, paymentID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := s.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.Status != models.PaymentApproved {
		return nil, ErrMustApproveFirst
	}

	now := time.Now()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := s.Earnings.CreditFromPayout(tx, &payment); err != nil {
			return err
		}

		res := tx.Model(&models.Payment{}).
			Where("id = ? AND status = ?", paymentID, models.PaymentApproved).
			Updates(map[string]interface{}{
				"status":  models.PaymentPaid,
				"paid_by": managerID,
				"paid_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrMustApproveFirst
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	payment.Status = models.PaymentPaid
	payment.PaidBy = &managerID
	payment.PaidAt = &now
	return &payment, nil
}

// CreateCheckout opens a provider checkout for a session and records a
// pending inbound payment. Any authenticated student may pay.
func (s *PaymentService) CreateCheckout(userID uuid.UUID, sessionID uuid.UUID) (*payments.Checkout, error) {
	session, err := s.Sessions.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	amount := CalcAmount(session)
	checkout, err := s.Adapter.CreateCheckout(payments.CheckoutInput{
		SessionID:  session.ID.String(),
		Amount:     amount,
		Currency:   session.Currency,
		CustomerID: userID.String(),
	})
	if err != nil {
		return nil, err
	}

	payment := models.Payment{
		SessionID:   session.ID,
		TutorID:     session.TutorID,
		RequesterID: userID,
		Amount:      amount,
		Currency:    session.Currency,
		Type:        models.PaymentTypeCheckout,
		Provider:    "mock",
		ProviderRef: &checkout.PaymentRef,
		Status:      models.PaymentPending,
	}
	if err := s.DB.Create(&payment).Error; err != nil {
		return nil, err
	}
	return checkout, nil
}

// GetCheckoutStatus polls the provider. The first poll that sees the
// provider report paid settles the payment and credits the tutor;
// later polls find the payment already paid and do nothing.
func (s *PaymentService) GetCheckoutStatus(paymentRef string) (*payments.ProviderStatus, error) {
	status, err := s.Adapter.GetStatus(paymentRef)
	if err != nil {
		return nil, err
	}
	if status.Status != models.PaymentPaid {
		return status, nil
	}

	var payment models.Payment
	if err := s.DB.Where("provider_ref = ?", paymentRef).First(&payment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.Status == models.PaymentPaid {
		return status, nil
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Payment{}).
			Where("id = ? AND status <> ?", payment.ID, models.PaymentPaid).
			Update("status", models.PaymentPaid)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		_, err := s.Earnings.CreditFromPayout(tx, &payment)
		return err
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// CalcAmount derives the settlement amount from a session: fixed price
// when set, else hourly rate prorated by duration, else the demo
// fallback.
func CalcAmount(session *models.Session) int64 {
	if session.Price != nil && *session.Price > 0 {
		return *session.Price
	}
	if session.HourlyRate != nil && *session.HourlyRate > 0 && session.DurationMin > 0 {
		amount := int64(math.Round(float64(*session.HourlyRate) * float64(session.DurationMin) / 60))
		if amount > 0 {
			return amount
		}
	}
	return FallbackAmount
}

func (s *PaymentService) ListForUser(uid uuid.UUID, roles models.RoleSet) ([]models.Payment, error) {
	var list []models.Payment
	q := s.DB.Order("created_at desc")
	switch {
	case roles.Manager:
	case roles.Tutor:
		q = q.Where("tutor_id = ?", uid)
	default:
		q = q.Where("requester_id = ?", uid)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
