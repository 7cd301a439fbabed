package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"portalescolar_backend/internals/features/school/notifications/model"
)

// Store isola a persistência dos avisos: quem dispara um aviso (relatórios,
// disciplina, secretaria) não conhece o banco por trás.
type Store interface {
	Create(ctx context.Context, n *model.NotificationModel) error
	CreateMany(ctx context.Context, ns []model.NotificationModel) error
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, onlyUnread bool) ([]model.NotificationModel, error)
	MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) (bool, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Create(ctx context.Context, n *model.NotificationModel) error {
	return s.db.WithContext(ctx).Create(n).Error
}

func (s *gormStore) CreateMany(ctx context.Context, ns []model.NotificationModel) error {
	if len(ns) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&ns).Error
}

func (s *gormStore) ListByRecipient(ctx context.Context, recipientID uuid.UUID, onlyUnread bool) ([]model.NotificationModel, error) {
	q := s.db.WithContext(ctx).
		Where("notification_recipient_id = ?", recipientID)
	if onlyUnread {
		q = q.Where("notification_is_read = FALSE")
	}
	var rows []model.NotificationModel
	err := q.Order("notification_created_at DESC").Find(&rows).Error
	return rows, err
}

// MarkRead só marca avisos do próprio destinatário. Devolve false quando o
// aviso não existe ou pertence a outro usuário.
func (s *gormStore) MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("notification_id = ? AND notification_recipient_id = ?", notificationID, recipientID).
		Update("notification_is_read", true)
	return res.RowsAffected > 0, res.Error
}
