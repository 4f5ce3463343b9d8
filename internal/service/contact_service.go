package service

import (
	"context"
	"strings"

	"github.com/ice-club/storefront/internal/config"
	"github.com/ice-club/storefront/internal/logger"
	"github.com/ice-club/storefront/internal/models"
	"github.com/ice-club/storefront/internal/queue"
	"github.com/ice-club/storefront/internal/repository"
)

// ContactService 联系表单服务
type ContactService struct {
	messageRepo repository.ContactMessageRepository
	queueClient *queue.Client
	emailSvc    *EmailService
	store       *config.StoreConfig
}

// NewContactService 创建联系表单服务
func NewContactService(
	messageRepo repository.ContactMessageRepository,
	queueClient *queue.Client,
	emailSvc *EmailService,
	store *config.StoreConfig,
) *ContactService {
	return &ContactService{
		messageRepo: messageRepo,
		queueClient: queueClient,
		emailSvc:    emailSvc,
		store:       store,
	}
}

// ContactInput 联系表单输入
type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// Submit 保存留言并尽力通知店铺邮箱，通知失败不影响提交结果
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*models.ContactMessage, error) {
	message := &models.ContactMessage{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	adminEmail := ""
	if s.store != nil {
		adminEmail = strings.TrimSpace(s.store.AdminEmail)
	}
	if adminEmail == "" {
		return message, nil
	}

	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueContactNotifyEmail(queue.ContactNotifyPayload{MessageID: message.ID}); err != nil {
			logger.Warnw("contact_notify_enqueue_failed", "message_id", message.ID, "error", err)
		}
		return message, nil
	}
	if s.emailSvc != nil {
		if err := s.emailSvc.SendContactNotification(adminEmail, message); err != nil {
			logger.Warnw("contact_notify_send_failed", "message_id", message.ID, "error", err)
		}
	}
	return message, nil
}

// List 留言列表
func (s *ContactService) List(ctx context.Context, filter repository.ContactMessageListFilter) ([]models.ContactMessage, int64, error) {
	return s.messageRepo.List(filter)
}

// GetByID 留言详情
func (s *ContactService) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	message, err := s.messageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}
	return message, nil
}
