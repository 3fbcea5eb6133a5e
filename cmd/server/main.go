package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	authapp "clicker-server/internal/application/auth"
	gameapp "clicker-server/internal/application/game"
	giftcodeapp "clicker-server/internal/application/giftcode"
	historyapp "clicker-server/internal/application/history"
	purchaseapp "clicker-server/internal/application/purchase"
	"clicker-server/internal/infrastructure/config"
	otelinfra "clicker-server/internal/infrastructure/observability/otel"
	"clicker-server/internal/infrastructure/persistence/mysql"
	"clicker-server/internal/infrastructure/relay"
	walletinfra "clicker-server/internal/infrastructure/wallet"
	"clicker-server/internal/presentation/rest"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// OpenTelemetryの初期化
	tracerShutdown, err := otelinfra.InitTracer(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown tracer: %v", err)
		}
	}()

	meterShutdown, err := otelinfra.InitMeter(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize meter: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown meter: %v", err)
		}
	}()

	// ロガーとメトリクスの初期化
	tracer := otelinfra.Tracer("clicker-server")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("clicker-server")
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	// データベース接続の初期化
	db, err := mysql.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// リポジトリの初期化
	gameStateRepo := mysql.NewGameStateRepository(db)
	purchaseRepo := mysql.NewPurchaseRepository(db)
	giftCodeRepo := mysql.NewGiftCodeRepository(db)

	// トランザクションマネージャーの初期化
	txManager := mysql.NewTransactionManager(db)

	// トレードリレーゲートウェイとウォレットコネクターの初期化
	gateway := relay.NewClient(&cfg.Relay, logger)
	connector := walletinfra.NewEnvConnector(&cfg.Wallet, logger)

	// アプリケーションサービスの初期化
	authAppService := authapp.NewAuthApplicationService(&cfg.JWT, logger)

	gameAppService := gameapp.NewGameStateApplicationService(
		gameStateRepo,
		logger,
		metrics,
	)

	purchaseAppService := purchaseapp.NewPurchaseApplicationService(
		gateway,
		connector,
		gameAppService,
		purchaseRepo,
		cfg.Relay.DestChainID,
		cfg.Relay.DestToken,
		cfg.Relay.RecipientAddress,
		logger,
		metrics,
	)

	historyAppService := historyapp.NewHistoryApplicationService(
		purchaseRepo,
		logger,
		metrics,
	)

	giftCodeAppService := giftcodeapp.NewGiftCodeApplicationService(
		giftCodeRepo,
		txManager,
		gameAppService,
		logger,
		metrics,
	)

	// REST APIルーターの初期化
	router, err := rest.NewRouter(
		cfg,
		logger,
		metrics,
		db,
		gateway,
		connector,
		authAppService,
		gameAppService,
		purchaseAppService,
		historyAppService,
		giftCodeAppService,
	)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	// 自動生成ティッカーの起動（1秒ごとに全アクティブ状態へ自動収入を加算）
	tickCtx, tickCancel := context.WithCancel(context.Background())
	defer tickCancel()
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-tickCtx.Done():
				return
			case <-ticker.C:
				gameAppService.Tick(tickCtx)
			}
		}
	}()

	// サーバーアドレスの設定
	address := fmt.Sprintf(":%d", cfg.Server.Port)

	// グレースフルシャットダウンの設定
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// REST APIサーバーを別ゴルーチンで起動
	go func() {
		log.Printf("REST API server starting on %s", address)
		if err := router.Start(address); err != nil {
			log.Printf("REST API server error: %v", err)
		}
	}()

	// シグナルを待機
	<-quit
	log.Println("Shutting down server...")

	// 自動生成ティッカーの停止
	tickCancel()

	// REST APIサーバーのシャットダウン
	if err := router.Shutdown(); err != nil {
		log.Printf("Error shutting down REST API server: %v", err)
	}

	log.Println("Server stopped")
}
