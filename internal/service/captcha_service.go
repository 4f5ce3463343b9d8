package service

import (
	"strings"
	"sync"
	"time"

	"github.com/ice-club/storefront/internal/config"

	"github.com/mojocn/base64Captcha"
)

// CaptchaImageChallenge 图片验证码挑战
type CaptchaImageChallenge struct {
	CaptchaID string `json:"captcha_id"`
	ImageB64  string `json:"image_base64"`
}

// CaptchaService 图片验证码服务
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu         sync.Mutex
	imageStore base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: cfg}
}

// Enabled 登录是否要求验证码
func (s *CaptchaService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// GenerateImageChallenge 生成图片验证码
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	store := s.ensureImageStore()
	image := s.cfg.Image
	driver := base64Captcha.NewDriverDigit(
		normalizeCaptchaInt(image.Height, 80),
		normalizeCaptchaInt(image.Width, 240),
		normalizeCaptchaInt(image.Length, 5),
		0.7,
		normalizeCaptchaInt(image.ShowLine, 2),
	)
	captcha := base64Captcha.NewCaptcha(driver, store)
	id, b64, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{CaptchaID: id, ImageB64: b64}, nil
}

// Verify 校验验证码，未启用时直接通过
func (s *CaptchaService) Verify(captchaID, captchaCode string) error {
	if !s.Enabled() {
		return nil
	}
	captchaID = strings.TrimSpace(captchaID)
	captchaCode = strings.TrimSpace(captchaCode)
	if captchaID == "" || captchaCode == "" {
		return ErrCaptchaRequired
	}
	store := s.ensureImageStore()
	if !store.Verify(captchaID, captchaCode, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func (s *CaptchaService) ensureImageStore() base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.imageStore == nil {
		maxStore := normalizeCaptchaInt(s.cfg.Image.MaxStore, 10240)
		expire := normalizeCaptchaInt(s.cfg.Image.ExpireSeconds, 300)
		s.imageStore = base64Captcha.NewMemoryStore(maxStore, time.Duration(expire)*time.Second)
	}
	return s.imageStore
}

func normalizeCaptchaInt(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
