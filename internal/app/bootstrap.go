package app

import (
	"errors"
	"fmt"

	"github.com/ice-club/storefront/internal/authz"
	"github.com/ice-club/storefront/internal/config"
	"github.com/ice-club/storefront/internal/models"
	"github.com/ice-club/storefront/internal/provider"
	"github.com/ice-club/storefront/internal/queue"
	"github.com/ice-club/storefront/internal/router"
	"github.com/ice-club/storefront/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		return nil, fmt.Errorf("init queue client failed: %w", err)
	}

	container := provider.NewContainer(cfg, queueClient)

	authzService, err := authz.NewService(models.DB)
	if err != nil {
		return nil, fmt.Errorf("init authz service failed: %w", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		return nil, fmt.Errorf("bootstrap builtin roles failed: %w", err)
	}
	container.AuthzService = authzService

	var services []Service

	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService(addr, engine))
	}

	if mode == ModeAll || mode == ModeWorker {
		if cfg.Queue.Enabled {
			consumer := worker.NewConsumer(container)
			workerService, err := worker.NewService(&cfg.Queue, consumer)
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		} else if mode == ModeWorker {
			return nil, errors.New("worker mode requires queue enabled")
		}
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
