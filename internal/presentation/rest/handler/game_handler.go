package handler

import (
	"net/http"

	gameapp "clicker-server/internal/application/game"

	"github.com/labstack/echo/v4"
)

// GameHandler ゲーム状態関連ハンドラー
type GameHandler struct {
	gameService *gameapp.GameStateApplicationService
}

// NewGameHandler 新しいGameHandlerを作成
func NewGameHandler(gameService *gameapp.GameStateApplicationService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
	}
}

// GetState ゲーム状態取得ハンドラー
// @Summary ゲーム状態を取得
// @Description 現在のゲーム状態スナップショットを返します
// @Tags game
// @Produce json
// @Security Bearer
// @Success 200 {object} GameStateResponse "ゲーム状態"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /game/state [get]
func (h *GameHandler) GetState(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "user_id not found in token")
	}

	resp, err := h.gameService.GetState(c.Request().Context(), &gameapp.GetStateRequest{
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, GameStateResponse{
		State: toGameStateModel(resp.State),
	})
}

// Click クリックハンドラー
// @Summary クリックを実行
// @Description クリックを処理し、獲得コインと最新状態を返します
// @Tags game
// @Produce json
// @Security Bearer
// @Success 200 {object} ClickResponse "クリック結果"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /game/click [post]
func (h *GameHandler) Click(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "user_id not found in token")
	}

	resp, err := h.gameService.Click(c.Request().Context(), &gameapp.ClickRequest{
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ClickResponse{
		Earned: resp.Earned,
		State:  toGameStateModel(resp.State),
	})
}

// Reset ゲーム状態リセットハンドラー
// @Summary ゲーム状態をリセット
// @Description ゲーム状態を初期値に戻します
// @Tags game
// @Produce json
// @Security Bearer
// @Success 200 {object} GameStateResponse "リセット後の状態"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /game/reset [post]
func (h *GameHandler) Reset(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "user_id not found in token")
	}

	resp, err := h.gameService.Reset(c.Request().Context(), &gameapp.ResetRequest{
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, GameStateResponse{
		State: toGameStateModel(resp.State),
	})
}

// toGameStateModel アプリケーション層のDTOをレスポンスモデルに変換
func toGameStateModel(state gameapp.StateDTO) GameStateModel {
	return GameStateModel{
		Coins:             state.Coins,
		ClickPower:        state.ClickPower,
		AutoPerSecond:     state.AutoPerSecond,
		Multiplier:        state.Multiplier,
		MultiplierEndTime: state.MultiplierEndTime,
		TotalClicks:       state.TotalClicks,
		TotalCoinsEarned:  state.TotalCoinsEarned,
		PurchaseCount:     state.PurchaseCount,
	}
}
