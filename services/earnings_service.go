package services

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/tutoria-app/backend/models"
	"gorm.io/gorm"
)

const DefaultFeePct = 0.1

// EarningsService credits net tutor earnings when a payout is paid.
// Crediting is idempotent on the payment id: the unique index on
// earnings.payment_id turns the insert into a create-if-absent, so a
// retried or racing credit returns the existing entry.
type EarningsService struct {
	DB     *gorm.DB
	FeePct float64
}

func NewEarningsService(db *gorm.DB, feePct float64) *EarningsService {
	if feePct <= 0 {
		feePct = DefaultFeePct
	}
	return &EarningsService{DB: db, FeePct: feePct}
}

func (s *EarningsService) CreditFromPayout(tx *gorm.DB, payment *models.Payment) (*models.Earning, error) {
	if payment.TutorID == nil {
		return nil, ErrPaymentWithoutTutor
	}

	var existing models.Earning
	err := tx.Where("payment_id = ?", payment.ID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	currency := payment.Currency
	if currency == "" {
		currency = "COP"
	}

	fee := int64(math.Round(float64(payment.Amount) * s.FeePct))
	net := payment.Amount - fee
	if net < 0 {
		net = 0
	}

	earning := models.Earning{
		TutorID:     *payment.TutorID,
		SessionID:   payment.SessionID,
		PaymentID:   payment.ID,
		Currency:    currency,
		GrossAmount: payment.Amount,
		FeeAmount:   fee,
		NetAmount:   net,
		Status:      "accrued",
	}
	if err := tx.Create(&earning).Error; err != nil {
		// Lost the create race: the winner's entry is authoritative.
		var winner models.Earning
		if lookupErr := tx.Where("payment_id = ?", payment.ID).First(&winner).Error; lookupErr == nil {
			return &winner, nil
		}
		return nil, err
	}
	return &earning, nil
}

func (s *EarningsService) ListForTutor(tutorID uuid.UUID) ([]models.Earning, error) {
	var earnings []models.Earning
	if err := s.DB.Where("tutor_id = ?", tutorID).Order("created_at desc").Find(&earnings).Error; err != nil {
		return nil, err
	}
	return earnings, nil
}
