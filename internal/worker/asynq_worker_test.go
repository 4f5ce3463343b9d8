package worker

import (
	"encoding/json"
	"testing"

	"github.com/ice-club/storefront/internal/models"
	"github.com/ice-club/storefront/internal/provider"
	"github.com/ice-club/storefront/internal/queue"
	"github.com/ice-club/storefront/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.Product{}); err != nil {
		t.Fatalf("migrate order tables failed: %v", err)
	}
	container := &provider.Container{
		OrderRepo: repository.NewOrderRepository(db),
	}
	return NewConsumer(container), db
}

func orderEmailTask(t *testing.T, orderID uint) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(queue.OrderEmailPayload{OrderID: orderID})
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	return asynq.NewTask(queue.TaskOrderConfirmationEmail, payload)
}

func TestLoadOrderFromTaskNilTask(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	order, err := consumer.loadOrderFromTask(nil, "order_confirmation")
	if err != nil {
		t.Fatalf("nil task should not error, got %v", err)
	}
	if order != nil {
		t.Fatalf("nil task should yield nil order, got %+v", order)
	}
}

func TestLoadOrderFromTaskZeroID(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	order, err := consumer.loadOrderFromTask(orderEmailTask(t, 0), "order_confirmation")
	if err != nil {
		t.Fatalf("zero order id should not error, got %v", err)
	}
	if order != nil {
		t.Fatalf("zero order id should yield nil order, got %+v", order)
	}
}

func TestLoadOrderFromTaskSkipsEmptyEmail(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	record := &models.Order{Name: "Tester", Phone: "0100", Governorate: "Cairo", Address: "1 Main St", Status: "Pending"}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	order, err := consumer.loadOrderFromTask(orderEmailTask(t, record.ID), "order_confirmation")
	if err != nil {
		t.Fatalf("empty receiver should not error, got %v", err)
	}
	if order != nil {
		t.Fatalf("empty receiver should yield nil order, got %+v", order)
	}
}

func TestLoadOrderFromTaskReturnsOrder(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	record := &models.Order{Name: "Tester", Email: "tester@example.com", Phone: "0100", Governorate: "Cairo", Address: "1 Main St", Status: "Pending"}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	order, err := consumer.loadOrderFromTask(orderEmailTask(t, record.ID), "order_confirmation")
	if err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if order == nil || order.ID != record.ID {
		t.Fatalf("want order %d got %+v", record.ID, order)
	}
}
