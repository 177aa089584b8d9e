package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/stitchpoint/orderdesk/internal/config"
	"github.com/stitchpoint/orderdesk/internal/sse"
	"github.com/stitchpoint/orderdesk/internal/store"
)

// Services bundles every service behind a single constructor.
type Services struct {
	Auth         *AuthService
	Order        *OrderService
	Coordinator  *CoordinatorService
	Customer     *CustomerService
	Dashboard    *DashboardService
	Report       *ReportService
	Storage      *StorageService
	Notification *NotificationService
}

// NewServices wires all services against the shared store, redis client and
// SSE hub.
func NewServices(st *store.Store, rdb *redis.Client, hub *sse.Hub, cfg *config.Config, logger *zap.Logger) *Services {
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			logger.Warn("minio unavailable, uploads disabled", zap.Error(err))
			minioClient = nil
		}
	}

	notification := NewNotificationService(rdb, hub, logger)
	dashboard := NewDashboardService(st, rdb, logger)

	return &Services{
		Auth:         NewAuthService(cfg),
		Order:        NewOrderService(st, dashboard, notification, logger),
		Coordinator:  NewCoordinatorService(st, notification),
		Customer:     NewCustomerService(st),
		Dashboard:    dashboard,
		Report:       NewReportService(st),
		Storage:      NewStorageService(minioClient, cfg.MinIO, logger),
		Notification: notification,
	}
}
