package service

import "errors"

// 业务层统一错误定义
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category has products and cannot be deleted")
	ErrSlugExists       = errors.New("slug already exists")
	ErrSKUExists        = errors.New("sku already exists")
	ErrVariantNotFound  = errors.New("variant not found")
	ErrSizeNotFound     = errors.New("size not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrMessageNotFound  = errors.New("message not found")
	ErrInvalidStatus    = errors.New("invalid order status")

	ErrCartEmpty         = errors.New("cart is empty")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInvalidCartAction = errors.New("invalid cart action")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrUsernameExists     = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrCaptchaRequired    = errors.New("captcha required")
	ErrCaptchaInvalid     = errors.New("captcha invalid")
	ErrLoginRateLimited   = errors.New("too many login attempts")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
)
