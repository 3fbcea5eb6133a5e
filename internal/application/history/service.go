package history

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"clicker-server/internal/domain/intent"
	"clicker-server/internal/domain/purchase"
	otelinfra "clicker-server/internal/infrastructure/observability/otel"
)

// HistoryApplicationService 購入履歴アプリケーションサービス
type HistoryApplicationService struct {
	purchaseRepo purchase.PurchaseRepository
	logger       *otelinfra.Logger
	metrics      *otelinfra.Metrics
	tracer       trace.Tracer
}

// NewHistoryApplicationService 新しいHistoryApplicationServiceを作成
func NewHistoryApplicationService(
	purchaseRepo purchase.PurchaseRepository,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *HistoryApplicationService {
	return &HistoryApplicationService{
		purchaseRepo: purchaseRepo,
		logger:       logger,
		metrics:      metrics,
		tracer:       otel.Tracer("history-service"),
	}
}

// GetPurchaseHistory 購入履歴を取得
func (s *HistoryApplicationService) GetPurchaseHistory(ctx context.Context, req *GetPurchaseHistoryRequest) (*GetPurchaseHistoryResponse, error) {
	ctx, span := s.tracer.Start(ctx, "HistoryApplicationService.GetPurchaseHistory")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
		attribute.Int("limit", req.Limit),
		attribute.Int("offset", req.Offset),
	)

	// バリデーション
	if req.Limit <= 0 {
		req.Limit = 50 // デフォルト値
	}
	if req.Limit > 100 {
		req.Limit = 100 // 最大値
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	var status intent.Status
	if req.Status != "" {
		var err error
		status, err = intent.NewStatus(req.Status)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, err
		}
	}

	purchases, err := s.purchaseRepo.FindByUserID(ctx, req.UserID, req.Limit, req.Offset, status)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to get purchase history", err, map[string]interface{}{
			"user_id": req.UserID,
		})
		return nil, fmt.Errorf("failed to get purchase history: %w", err)
	}

	span.SetAttributes(attribute.Int("result_count", len(purchases)))

	return &GetPurchaseHistoryResponse{
		Purchases: purchases,
		Limit:     req.Limit,
		Offset:    req.Offset,
	}, nil
}

// GetPurchase 購入記録を1件取得
func (s *HistoryApplicationService) GetPurchase(ctx context.Context, req *GetPurchaseRequest) (*GetPurchaseResponse, error) {
	ctx, span := s.tracer.Start(ctx, "HistoryApplicationService.GetPurchase")
	defer span.End()

	span.SetAttributes(attribute.String("purchase_id", req.PurchaseID))

	p, err := s.purchaseRepo.FindByPurchaseID(ctx, req.PurchaseID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	return &GetPurchaseResponse{Purchase: p}, nil
}
