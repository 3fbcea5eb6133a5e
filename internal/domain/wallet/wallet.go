package wallet

import (
	"context"
)

// Session 接続中のウォレットセッション
type Session struct {
	Address string
	ChainID int64
}

// Connector 単一の外部署名セッションを管理するインターフェース
// 接続操作はローカル状態のみを変更し、オンチェーンの権限には一切触れない
type Connector interface {
	// Connect ホスト環境の署名プロバイダへ接続する
	// プロバイダが存在しない場合はErrNoWalletDetected
	// 再接続は冪等で、アドレスを再解決するだけ
	Connect(ctx context.Context) (*Session, error)

	// Disconnect ローカルのセッション状態をクリアする
	Disconnect()

	// IsConnected 接続中かどうかを返す
	IsConnected() bool

	// Address 接続中のアドレスを返す（未接続ならErrNotConnected）
	Address() (string, error)

	// ChainID 接続中のチェーンIDを返す（未接続ならErrNotConnected）
	ChainID() (int64, error)

	// Sign インテントIDに対する署名を返す（署名鍵がない場合は空文字列）
	Sign(intentID string) (string, error)
}
