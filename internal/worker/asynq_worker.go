package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/ice-club/storefront/internal/logger"
	"github.com/ice-club/storefront/internal/models"
	"github.com/ice-club/storefront/internal/provider"
	"github.com/ice-club/storefront/internal/queue"
	"github.com/ice-club/storefront/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmationEmail, c.handleOrderConfirmationEmail)
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskContactNotifyEmail, c.handleContactNotifyEmail)
}

func (c *Consumer) handleOrderConfirmationEmail(_ context.Context, task *asynq.Task) error {
	order, err := c.loadOrderFromTask(task, "order_confirmation")
	if err != nil || order == nil {
		return err
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_confirmation_skip_email_service_nil", "order_id", order.ID)
		return nil
	}
	if err := c.EmailService.SendOrderConfirmation(order); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_order_confirmation_skip_disabled", "order_id", order.ID)
			return nil
		}
		logger.Warnw("worker_order_confirmation_send_failed", "order_id", order.ID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	order, err := c.loadOrderFromTask(task, "order_status")
	if err != nil || order == nil {
		return err
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_status_skip_email_service_nil", "order_id", order.ID)
		return nil
	}
	if err := c.EmailService.SendOrderStatusEmail(order); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_order_status_skip_disabled", "order_id", order.ID)
			return nil
		}
		logger.Warnw("worker_order_status_send_failed", "order_id", order.ID, "status", order.Status, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleContactNotifyEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.ContactNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_contact_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.MessageID == 0 {
		return nil
	}
	message, err := c.MessageRepo.GetByID(payload.MessageID)
	if err != nil {
		logger.Warnw("worker_contact_notify_fetch_failed", "message_id", payload.MessageID, "error", err)
		return err
	}
	if message == nil {
		logger.Debugw("worker_contact_notify_skip_not_found", "message_id", payload.MessageID)
		return nil
	}
	adminEmail := ""
	if c.Config != nil {
		adminEmail = strings.TrimSpace(c.Config.Store.AdminEmail)
	}
	if adminEmail == "" || c.EmailService == nil {
		logger.Debugw("worker_contact_notify_skip_unconfigured", "message_id", message.ID)
		return nil
	}
	if err := c.EmailService.SendContactNotification(adminEmail, message); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			return nil
		}
		logger.Warnw("worker_contact_notify_send_failed", "message_id", message.ID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) loadOrderFromTask(task *asynq.Task, kind string) (*models.Order, error) {
	if c == nil || task == nil {
		return nil, nil
	}
	var payload queue.OrderEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_"+kind+"_unmarshal_failed", "error", err)
		return nil, err
	}
	if payload.OrderID == 0 {
		return nil, nil
	}
	loaded, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_"+kind+"_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return nil, err
	}
	if loaded == nil {
		logger.Debugw("worker_"+kind+"_skip_order_not_found", "order_id", payload.OrderID)
		return nil, nil
	}
	if strings.TrimSpace(loaded.Email) == "" {
		logger.Debugw("worker_"+kind+"_skip_empty_receiver", "order_id", loaded.ID)
		return nil, nil
	}
	return loaded, nil
}
