package rest

import (
	"net/http"

	authapp "clicker-server/internal/application/auth"
	gameapp "clicker-server/internal/application/game"
	giftcodeapp "clicker-server/internal/application/giftcode"
	historyapp "clicker-server/internal/application/history"
	purchaseapp "clicker-server/internal/application/purchase"
	"clicker-server/internal/domain/intent"
	"clicker-server/internal/domain/wallet"
	"clicker-server/internal/infrastructure/config"
	otelinfra "clicker-server/internal/infrastructure/observability/otel"
	"clicker-server/internal/infrastructure/persistence/mysql"
	"clicker-server/internal/presentation/rest/handler"
	restmiddleware "clicker-server/internal/presentation/rest/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Router REST APIルーター
type Router struct {
	echo            *echo.Echo
	authHandler     *handler.AuthHandler
	gameHandler     *handler.GameHandler
	shopHandler     *handler.ShopHandler
	historyHandler  *handler.HistoryHandler
	walletHandler   *handler.WalletHandler
	giftCodeHandler *handler.GiftCodeHandler
	catalogHandler  *handler.CatalogHandler
}

// NewRouter 新しいRouterを作成
func NewRouter(
	cfg *config.Config,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
	db *mysql.DB,
	gateway intent.Gateway,
	connector wallet.Connector,
	authService *authapp.AuthApplicationService,
	gameService *gameapp.GameStateApplicationService,
	purchaseService *purchaseapp.PurchaseApplicationService,
	historyService *historyapp.HistoryApplicationService,
	giftCodeService *giftcodeapp.GiftCodeApplicationService,
) (*Router, error) {
	e := echo.New()

	// Echoのデフォルトエラーハンドラーを無効化（カスタムエラーハンドラーを使用）
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		// エラーハンドリングミドルウェアで処理される
	}

	// ミドルウェアの設定
	setupMiddleware(e, cfg, logger, metrics)

	// ハンドラーの作成
	authHandler := handler.NewAuthHandler(authService)
	gameHandler := handler.NewGameHandler(gameService)
	shopHandler := handler.NewShopHandler(purchaseService)
	historyHandler := handler.NewHistoryHandler(historyService)
	walletHandler := handler.NewWalletHandler(connector)
	giftCodeHandler := handler.NewGiftCodeHandler(giftCodeService)
	catalogHandler := handler.NewCatalogHandler(gateway)

	// ルーティングの設定
	setupRoutes(e, cfg, logger, db,
		authHandler, gameHandler, shopHandler, historyHandler,
		walletHandler, giftCodeHandler, catalogHandler)

	// Swagger UI / ReDoc統合
	SetupSwagger(e)

	return &Router{
		echo:            e,
		authHandler:     authHandler,
		gameHandler:     gameHandler,
		shopHandler:     shopHandler,
		historyHandler:  historyHandler,
		walletHandler:   walletHandler,
		giftCodeHandler: giftCodeHandler,
		catalogHandler:  catalogHandler,
	}, nil
}

// setupMiddleware ミドルウェアを設定
func setupMiddleware(e *echo.Echo, cfg *config.Config, logger *otelinfra.Logger, metrics *otelinfra.Metrics) {
	// リカバリーミドルウェア
	e.Use(middleware.Recover())

	// CORS設定
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"}, // 本番環境では適切に設定
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// リクエストIDの設定
	e.Use(middleware.RequestID())

	// セキュリティヘッダー
	e.Use(restmiddleware.SecurityHeadersMiddleware())

	// トレーシングミドルウェア
	e.Use(restmiddleware.TracingMiddleware())

	// ログミドルウェア
	e.Use(restmiddleware.LoggingMiddleware(logger))

	// メトリクスミドルウェア
	e.Use(restmiddleware.MetricsMiddleware(metrics))

	// エラーハンドリングミドルウェア
	e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
}

// setupRoutes ルーティングを設定
func setupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	logger *otelinfra.Logger,
	db *mysql.DB,
	authHandler *handler.AuthHandler,
	gameHandler *handler.GameHandler,
	shopHandler *handler.ShopHandler,
	historyHandler *handler.HistoryHandler,
	walletHandler *handler.WalletHandler,
	giftCodeHandler *handler.GiftCodeHandler,
	catalogHandler *handler.CatalogHandler,
) {
	// API v1グループ
	api := e.Group("/api/v1")

	// 認証エンドポイント（認証不要）
	api.POST("/auth/token", authHandler.GenerateToken)

	// 認証が必要なエンドポイント
	authGroup := api.Group("", restmiddleware.AuthMiddleware(&cfg.JWT, logger))

	// ゲーム状態エンドポイント
	authGroup.GET("/game/state", gameHandler.GetState)
	authGroup.POST("/game/click", gameHandler.Click)
	authGroup.POST("/game/reset", gameHandler.Reset)

	// ショップ・購入エンドポイント
	authGroup.GET("/shop/items", shopHandler.ListItems)
	authGroup.POST("/shop/purchase", shopHandler.Purchase)
	authGroup.GET("/intents/:intent_id/receipt", shopHandler.GetReceipt)

	// 購入履歴エンドポイント
	authGroup.GET("/purchases", historyHandler.GetPurchaseHistory)
	authGroup.GET("/purchases/:purchase_id", historyHandler.GetPurchase)

	// ウォレットエンドポイント
	authGroup.POST("/wallet/connect", walletHandler.Connect)
	authGroup.POST("/wallet/disconnect", walletHandler.Disconnect)
	authGroup.GET("/wallet", walletHandler.GetStatus)

	// ギフトコードエンドポイント
	authGroup.POST("/codes/redeem", giftCodeHandler.RedeemCode)

	// リレーカタログエンドポイント
	authGroup.GET("/catalog/chains", catalogHandler.GetChains)
	authGroup.GET("/catalog/tokens", catalogHandler.GetTokens)
	authGroup.GET("/catalog/prices", catalogHandler.GetPrices)

	// ヘルスチェックエンドポイント（認証不要）
	e.GET("/healthz", func(c echo.Context) error {
		if db != nil {
			if err := db.PingContext(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "unavailable",
				})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

// Start サーバーを起動
func (r *Router) Start(address string) error {
	return r.echo.Start(address)
}

// Shutdown サーバーをシャットダウン
func (r *Router) Shutdown() error {
	return r.echo.Close()
}
