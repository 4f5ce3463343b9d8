package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/ice-club/storefront/internal/config"
	"github.com/ice-club/storefront/internal/constants"
	"github.com/ice-club/storefront/internal/models"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg   *config.EmailConfig
	store *config.StoreConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig, store *config.StoreConfig) *EmailService {
	return &EmailService{cfg: cfg, store: store}
}

func (s *EmailService) storeName() string {
	if s.store != nil && strings.TrimSpace(s.store.Name) != "" {
		return s.store.Name
	}
	return "Ice Club Store"
}

func (s *EmailService) currency() string {
	if s.store != nil && strings.TrimSpace(s.store.Currency) != "" {
		return s.store.Currency
	}
	return "EGP"
}

var orderConfirmationTemplate = template.Must(template.New("order_confirmation").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Thank you for your order, {{.Name}}!</h2>
  <p>Your order <strong>#{{.OrderID}}</strong> has been received and is being processed.</p>
  <table border="0" cellpadding="6" cellspacing="0" style="border-collapse: collapse;">
    <tr style="background: #f4f4f4;">
      <th align="left">Product</th>
      <th align="left">Color</th>
      <th align="left">Size</th>
      <th align="right">Qty</th>
      <th align="right">Price</th>
      <th align="right">Subtotal</th>
    </tr>
    {{range .Items}}
    <tr>
      <td>{{.ProductName}}</td>
      <td>{{.Color}}</td>
      <td>{{.Size}}</td>
      <td align="right">{{.Quantity}}</td>
      <td align="right">{{.Price}} {{$.Currency}}</td>
      <td align="right">{{.Subtotal}} {{$.Currency}}</td>
    </tr>
    {{end}}
  </table>
  <p><strong>Total: {{.Total}} {{.Currency}}</strong></p>
  <p>Shipping to: {{.Address}}, {{.Governorate}}</p>
  <p>We will contact you at {{.Phone}} once your order ships.</p>
  <p>{{.StoreName}}</p>
</body>
</html>`))

type orderConfirmationItem struct {
	ProductName string
	Color       string
	Size        string
	Quantity    int
	Price       string
	Subtotal    string
}

type orderConfirmationData struct {
	Name        string
	OrderID     uint
	Items       []orderConfirmationItem
	Total       string
	Currency    string
	Address     string
	Governorate string
	Phone       string
	StoreName   string
}

// SendOrderConfirmation 发送下单确认邮件（HTML）
func (s *EmailService) SendOrderConfirmation(order *models.Order) error {
	if order == nil {
		return ErrOrderNotFound
	}
	data := orderConfirmationData{
		Name:        order.Name,
		OrderID:     order.ID,
		Total:       order.TotalPrice.String(),
		Currency:    s.currency(),
		Address:     order.Address,
		Governorate: order.Governorate,
		Phone:       order.Phone,
		StoreName:   s.storeName(),
	}
	for _, item := range order.Items {
		data.Items = append(data.Items, orderConfirmationItem{
			ProductName: item.ProductName,
			Color:       item.Color,
			Size:        item.Size,
			Quantity:    item.Quantity,
			Price:       item.PriceAtPurchase.String(),
			Subtotal:    item.Subtotal().String(),
		})
	}

	var buf bytes.Buffer
	if err := orderConfirmationTemplate.Execute(&buf, data); err != nil {
		return err
	}
	subject := fmt.Sprintf("Order Confirmation - #%d", order.ID)
	return s.sendEmail(order.Email, subject, buf.String(), "text/html")
}

// SendOrderStatusEmail 发送订单状态变更通知
func (s *EmailService) SendOrderStatusEmail(order *models.Order) error {
	if order == nil {
		return ErrOrderNotFound
	}
	subject, body := buildOrderStatusContent(order, s.storeName())
	return s.sendEmail(order.Email, subject, body, "text/plain")
}

// SendContactNotification 将联系表单留言转发给店铺邮箱
func (s *EmailService) SendContactNotification(toEmail string, message *models.ContactMessage) error {
	if message == nil {
		return ErrMessageNotFound
	}
	subject := fmt.Sprintf("New contact message from %s", message.Name)
	body := fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\nSubject: %s\n\n%s",
		message.Name, message.Email, message.Phone, message.Subject, message.Message,
	)
	return s.sendEmail(toEmail, subject, body, "text/plain")
}

func buildOrderStatusContent(order *models.Order, storeName string) (string, string) {
	subject := fmt.Sprintf("Order #%d Update - %s", order.ID, order.Status)
	greeting := fmt.Sprintf("Hi %s,\n\n", order.Name)
	signature := fmt.Sprintf("\n\nBest regards,\n%s", storeName)
	switch order.Status {
	case constants.OrderStatusShipped:
		return subject, greeting + fmt.Sprintf(
			"Great news! Your order #%d is now on its way to you.", order.ID) + signature
	case constants.OrderStatusDelivered:
		return subject, greeting + fmt.Sprintf(
			"Your order #%d has been delivered. We hope you love it!", order.ID) + signature
	case constants.OrderStatusCanceled:
		return subject, greeting + fmt.Sprintf(
			"Your order #%d has been canceled. If you have any questions, please contact us.", order.ID) + signature
	default:
		return subject, greeting + fmt.Sprintf(
			"The status of your order #%d has been updated to %s.", order.ID, order.Status) + signature
	}
}

func (s *EmailService) sendEmail(toEmail, subject, body, contentType string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body, contentType)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	if s.cfg.UseTLS {
		return sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	return sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body, contentType string) string {
	if contentType == "" {
		contentType = "text/plain"
	}
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString(fmt.Sprintf("Content-Type: %s; charset=UTF-8\r\n", contentType))
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
