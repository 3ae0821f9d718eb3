package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/tutoria-app/backend/models"
	"github.com/tutoria-app/backend/notifications"
	"gorm.io/gorm"
)

type RequestSessionInput struct {
	TutorCode   string
	Topic       string
	Description string
	DurationMin int
	PreferredAt *time.Time
	Currency    string
	Price       *int64
	HourlyRate  *int64
}

// SessionService drives the session state machine. Transitions are
// guarded by conditional updates on the current status, so of two
// racing transitions exactly one wins.
type SessionService struct {
	DB       *gorm.DB
	Codes    *TutorCodeService
	Notifier *notifications.Notifier
}

func NewSessionService(db *gorm.DB, codes *TutorCodeService, notifier *notifications.Notifier) *SessionService {
	return &SessionService{DB: db, Codes: codes, Notifier: notifier}
}

func (s *SessionService) RequestSession(studentID uuid.UUID, in RequestSessionInput) (*models.Session, error) {
	code, err := s.Codes.GetByCode(in.TutorCode)
	if err != nil {
		return nil, err
	}
	if code == nil {
		return nil, ErrCodeNotFound
	}

	currency := in.Currency
	if currency == "" {
		currency = "COP"
	}

	session := models.Session{
		Status:      models.SessionRequested,
		StudentID:   studentID,
		TutorID:     code.ClaimedBy,
		TutorCode:   in.TutorCode,
		Topic:       in.Topic,
		Description: in.Description,
		DurationMin: in.DurationMin,
		PreferredAt: in.PreferredAt,
		Currency:    currency,
		Price:       in.Price,
		HourlyRate:  in.HourlyRate,
	}
	if err := s.DB.Create(&session).Error; err != nil {
		return nil, err
	}

	// An unclaimed code leaves TutorID nil and nobody gets notified;
	// such sessions stay unconfirmable until product decides otherwise.
	if session.TutorID != nil {
		tutorID := *session.TutorID
		sessionID := session.ID
		topic := session.Topic
		go s.Notifier.NotifyUser(tutorID, models.NotificationSessionRequest, map[string]interface{}{
			"sessionId": sessionID.String(),
			"topic":     topic,
		})
	}

	return &session, nil
}

func (s *SessionService) ConfirmByTutor(tutorID uuid.UUID, sessionID uuid.UUID, scheduledAt time.Time) (*models.Session, error) {
	var session models.Session
	if err := s.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.TutorID != nil && *session.TutorID != tutorID {
		return nil, ErrNotYourSession
	}
	if session.Status != models.SessionRequested {
		return nil, ErrSessionNotRequested
	}

	now := time.Now()
	res := s.DB.Model(&models.Session{}).
		Where("id = ? AND status = ?", sessionID, models.SessionRequested).
		Updates(map[string]interface{}{
			"status":       models.SessionConfirmed,
			"scheduled_at": scheduledAt,
			"confirmed_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrSessionNotRequested
	}

	session.Status = models.SessionConfirmed
	session.ScheduledAt = &scheduledAt
	session.ConfirmedAt = &now
	return &session, nil
}

func (s *SessionService) MarkDoneByStudent(studentID uuid.UUID, sessionID uuid.UUID) (*models.Session, error) {
	var session models.Session
	if err := s.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.StudentID != studentID {
		return nil, ErrNotYourSession
	}
	if session.Status != models.SessionConfirmed {
		return nil, ErrSessionNotConfirmed
	}

	now := time.Now()
	res := s.DB.Model(&models.Session{}).
		Where("id = ? AND status = ?", sessionID, models.SessionConfirmed).
		Updates(map[string]interface{}{
			"status":  models.SessionDone,
			"done_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrSessionNotConfirmed
	}

	session.Status = models.SessionDone
	session.DoneAt = &now
	return &session, nil
}

// GetByID does no authorization; callers gate access themselves.
func (s *SessionService) GetByID(id uuid.UUID) (*models.Session, error) {
	var session models.Session
	if err := s.DB.First(&session, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// ListForUser scopes by role: managers see everything, tutors their
// own sessions, everyone else (students by default) theirs.
func (s *SessionService) ListForUser(uid uuid.UUID, roles models.RoleSet) ([]models.Session, error) {
	var sessions []models.Session
	q := s.DB.Order("created_at desc")
	switch {
	case roles.Manager:
	case roles.Tutor:
		q = q.Where("tutor_id = ?", uid)
	default:
		q = q.Where("student_id = ?", uid)
	}
	if err := q.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}
