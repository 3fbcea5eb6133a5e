package purchase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"clicker-server/internal/domain/intent"
	"clicker-server/internal/domain/purchase"
	"clicker-server/internal/domain/shop"
	"clicker-server/internal/domain/wallet"
	otelinfra "clicker-server/internal/infrastructure/observability/otel"
)

// EffectApplier 購入効果をゲーム状態へ適用するインターフェース
type EffectApplier interface {
	ApplyEffect(ctx context.Context, userID string, effect shop.Effect) error
}

// PurchaseApplicationService アップグレード購入アプリケーションサービス
// quote→commit→execute→waitReceiptの4ステップを厳密に逐次実行する
// （ステップN+1はステップNの結果が確定するまで開始されない）
type PurchaseApplicationService struct {
	gateway          intent.Gateway
	connector        wallet.Connector
	effects          EffectApplier
	purchaseRepo     purchase.PurchaseRepository
	destChainID      int64
	destToken        string
	recipientAddress string
	logger           *otelinfra.Logger
	metrics          *otelinfra.Metrics
	tracer           trace.Tracer
	nowFn            func() time.Time
}

// NewPurchaseApplicationService 新しいPurchaseApplicationServiceを作成
func NewPurchaseApplicationService(
	gateway intent.Gateway,
	connector wallet.Connector,
	effects EffectApplier,
	purchaseRepo purchase.PurchaseRepository,
	destChainID int64,
	destToken string,
	recipientAddress string,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *PurchaseApplicationService {
	return &PurchaseApplicationService{
		gateway:          gateway,
		connector:        connector,
		effects:          effects,
		purchaseRepo:     purchaseRepo,
		destChainID:      destChainID,
		destToken:        destToken,
		recipientAddress: recipientAddress,
		logger:           logger,
		metrics:          metrics,
		tracer:           otel.Tracer("purchase-service"),
		nowFn:            time.Now,
	}
}

// Purchase アイテムを購入する
// レシートがcompletedの場合のみ効果を正確に1回適用する
// failed/refundedはエラーではなくレシート付きの結果として返す
func (s *PurchaseApplicationService) Purchase(ctx context.Context, req *PurchaseRequest, onStatus StatusFunc) (*PurchaseResponse, error) {
	ctx, span := s.tracer.Start(ctx, "PurchaseApplicationService.Purchase")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
		attribute.String("item_id", req.ItemID),
		attribute.Int64("origin_chain_id", req.OriginChainID),
	)

	started := s.nowFn()
	if onStatus == nil {
		onStatus = func(string) {}
	}

	// ウォレット接続は購入フロー全体の前提条件
	if !s.connector.IsConnected() {
		err := wallet.ErrNotConnected
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	ownerAddress, err := s.connector.Address()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	item, err := shop.Find(req.ItemID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "Starting purchase", map[string]interface{}{
		"user_id":         req.UserID,
		"item_id":         req.ItemID,
		"origin_chain_id": req.OriginChainID,
	})

	record, err := purchase.NewPurchase(s.generatePurchaseID(), req.UserID, req.ItemID, req.OriginChainID, item.PriceAtomic)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	// ステップ1: 見積もり
	onStatus(PhaseQuoting)
	quote, err := s.gateway.QuoteIntent(ctx, &intent.QuoteRequest{
		OwnerAddress:     ownerAddress,
		OriginChainID:    req.OriginChainID,
		OriginToken:      req.OriginToken,
		Amount:           item.PriceAtomic,
		DestChainID:      s.destChainID,
		DestToken:        s.destToken,
		RecipientAddress: s.recipientAddress,
		TradeType:        intent.TradeTypeExactInput,
		SlippageBps:      req.SlippageBps,
	})
	if err != nil {
		return nil, s.fail(ctx, span, record, item, err)
	}

	// ステップ2: レート確定（見積もり期限のクライアント側検査は行わない）
	onStatus(PhaseLocking)
	commitment, err := s.gateway.CommitIntent(ctx, &quote.Intent)
	if err != nil {
		return nil, s.fail(ctx, span, record, item, err)
	}

	record.SetIntentID(commitment.IntentID)
	s.savePurchase(ctx, record)

	// ステップ3: 実行（ウォレット承認が要求されるステップ）
	onStatus(PhaseConfirm)
	signature, err := s.connector.Sign(commitment.IntentID)
	if err != nil {
		return nil, s.fail(ctx, span, record, item, err)
	}

	originTx, err := s.gateway.ExecuteIntent(ctx, commitment.IntentID, signature)
	if err != nil {
		return nil, s.fail(ctx, span, record, item, err)
	}

	record.SetOriginTx(originTx)
	s.savePurchase(ctx, record)

	// ステップ4: レシート待機
	onStatus(PhaseConfirming)
	receipt, err := s.gateway.WaitReceipt(ctx, commitment.IntentID)
	if err != nil {
		return nil, s.fail(ctx, span, record, item, err)
	}

	effectApplied := false
	switch receipt.Status {
	case intent.StatusCompleted:
		// 効果の適用は成功した購入1回につき正確に1回
		if err := s.effects.ApplyEffect(ctx, req.UserID, item.Effect); err != nil {
			return nil, s.fail(ctx, span, record, item, err)
		}
		effectApplied = true
		record.Complete(receipt.DestTx)
	case intent.StatusFailed:
		record.Fail(receipt.ErrorText)
	case intent.StatusRefunded:
		record.Refund()
	default:
		return nil, s.fail(ctx, span, record, item, fmt.Errorf("unexpected terminal status: %s", receipt.Status))
	}

	s.savePurchase(ctx, record)

	s.metrics.RecordPurchase(ctx, item.ID, record.Status().String())
	s.metrics.RecordPurchaseDuration(ctx, item.ID, s.nowFn().Sub(started).Seconds())

	s.logger.Info(ctx, "Purchase finished", map[string]interface{}{
		"purchase_id": record.PurchaseID(),
		"intent_id":   record.IntentID(),
		"status":      record.Status().String(),
	})

	span.SetAttributes(
		attribute.String("purchase_id", record.PurchaseID()),
		attribute.String("intent_id", record.IntentID()),
		attribute.String("status", record.Status().String()),
	)
	span.SetStatus(otelcodes.Ok, "purchase finished")

	return &PurchaseResponse{
		PurchaseID:    record.PurchaseID(),
		ItemID:        item.ID,
		IntentID:      record.IntentID(),
		Receipt:       receipt,
		EffectApplied: effectApplied,
	}, nil
}

// GetReceipt レシートを1回だけ再取得する
// waitReceiptがタイムアウトしたインテントの結果を後から観測するための口
func (s *PurchaseApplicationService) GetReceipt(ctx context.Context, req *GetReceiptRequest) (*GetReceiptResponse, error) {
	ctx, span := s.tracer.Start(ctx, "PurchaseApplicationService.GetReceipt")
	defer span.End()

	span.SetAttributes(attribute.String("intent_id", req.IntentID))

	receipt, err := s.gateway.GetIntentReceipt(ctx, req.IntentID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("status", receipt.Status.String()))
	span.SetStatus(otelcodes.Ok, "receipt received")
	return &GetReceiptResponse{Receipt: receipt}, nil
}

// fail 購入フロー中のエラーを記録し、ユーザー拒否の正規化を行って返す
func (s *PurchaseApplicationService) fail(ctx context.Context, span trace.Span, record *purchase.Purchase, item shop.Item, err error) error {
	err = normalizeRejection(err)

	record.Fail(err.Error())
	s.savePurchase(ctx, record)

	s.metrics.RecordPurchase(ctx, item.ID, record.Status().String())

	s.logger.Error(ctx, "Purchase failed", err, map[string]interface{}{
		"purchase_id": record.PurchaseID(),
		"item_id":     item.ID,
	})

	span.RecordError(err)
	span.SetStatus(otelcodes.Error, err.Error())
	return err
}

// savePurchase 購入記録を保存する（失敗はログに記録して握りつぶす）
func (s *PurchaseApplicationService) savePurchase(ctx context.Context, record *purchase.Purchase) {
	if err := s.purchaseRepo.Save(ctx, record); err != nil {
		s.logger.Error(ctx, "Failed to save purchase record", err, map[string]interface{}{
			"purchase_id": record.PurchaseID(),
		})
	}
}

// generatePurchaseID 購入IDを生成
func (s *PurchaseApplicationService) generatePurchaseID() string {
	return fmt.Sprintf("pur_%d_%s", s.nowFn().UnixNano(), uuid.NewString()[:8])
}

// normalizeRejection 拒否系のエラーメッセージをwallet.ErrUserRejectedに正規化する
// それ以外のエラーは変更せずそのまま伝播させる
func normalizeRejection(err error) error {
	if errors.Is(err, wallet.ErrUserRejected) {
		return wallet.ErrUserRejected
	}

	var remoteErr *intent.RemoteError
	if errors.As(err, &remoteErr) {
		msg := strings.ToLower(remoteErr.Message)
		code := strings.ToLower(remoteErr.Code)
		if strings.Contains(msg, "rejected") || strings.Contains(msg, "denied") ||
			strings.Contains(code, "user_rejected") {
			return wallet.ErrUserRejected
		}
	}

	return err
}
