package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics メトリクス定義
type Metrics struct {
	// クリック数
	ClickCount metric.Int64Counter

	// 獲得コイン数
	CoinsEarned metric.Float64Counter

	// 購入数（アイテム・ステータス別）
	PurchaseCount metric.Int64Counter

	// 購入フロー全体の所要時間
	PurchaseDuration metric.Float64Histogram

	// ギフトコード引き換え数
	GiftCodeRedemptionCount metric.Int64Counter

	// リクエスト数
	RequestCount metric.Int64Counter

	// レスポンス時間
	ResponseTime metric.Float64Histogram

	// エラー率
	ErrorCount metric.Int64Counter
}

// NewMetrics 新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	meter := otel.Meter(meterName)

	clickCount, err := meter.Int64Counter(
		"clicks_total",
		metric.WithDescription("Total number of clicks"),
	)
	if err != nil {
		return nil, err
	}

	coinsEarned, err := meter.Float64Counter(
		"coins_earned_total",
		metric.WithDescription("Total coins earned"),
	)
	if err != nil {
		return nil, err
	}

	purchaseCount, err := meter.Int64Counter(
		"purchases_total",
		metric.WithDescription("Total number of upgrade purchases"),
	)
	if err != nil {
		return nil, err
	}

	purchaseDuration, err := meter.Float64Histogram(
		"purchase_duration_seconds",
		metric.WithDescription("Duration of the purchase flow in seconds"),
	)
	if err != nil {
		return nil, err
	}

	giftCodeRedemptionCount, err := meter.Int64Counter(
		"gift_code_redemptions_total",
		metric.WithDescription("Total number of gift code redemptions"),
	)
	if err != nil {
		return nil, err
	}

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("Response time in seconds"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		ClickCount:              clickCount,
		CoinsEarned:             coinsEarned,
		PurchaseCount:           purchaseCount,
		PurchaseDuration:        purchaseDuration,
		GiftCodeRedemptionCount: giftCodeRedemptionCount,
		RequestCount:            requestCount,
		ResponseTime:            responseTime,
		ErrorCount:              errorCount,
	}, nil
}

// RecordClick クリックと獲得コインを記録
func (m *Metrics) RecordClick(ctx context.Context, userID string, earned float64) {
	attrs := metric.WithAttributes(
		attribute.String("user_id", userID),
	)
	m.ClickCount.Add(ctx, 1, attrs)
	m.CoinsEarned.Add(ctx, earned, attrs)
}

// RecordCoinsEarned 獲得コインを記録（自動生成分など）
func (m *Metrics) RecordCoinsEarned(ctx context.Context, source string, earned float64) {
	m.CoinsEarned.Add(ctx, earned,
		metric.WithAttributes(
			attribute.String("source", source),
		),
	)
}

// RecordPurchase 購入を記録
func (m *Metrics) RecordPurchase(ctx context.Context, itemID, status string) {
	m.PurchaseCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("item_id", itemID),
			attribute.String("status", status),
		),
	)
}

// RecordPurchaseDuration 購入フローの所要時間を記録
func (m *Metrics) RecordPurchaseDuration(ctx context.Context, itemID string, seconds float64) {
	m.PurchaseDuration.Record(ctx, seconds,
		metric.WithAttributes(
			attribute.String("item_id", itemID),
		),
	)
}

// RecordGiftCodeRedemption ギフトコード引き換えを記録
func (m *Metrics) RecordGiftCodeRedemption(ctx context.Context, code string) {
	m.GiftCodeRedemptionCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("code", code),
		),
	)
}

// RecordRequest リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, duration float64) {
	m.ResponseTime.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}
