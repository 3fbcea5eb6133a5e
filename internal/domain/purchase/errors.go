package purchase

import "errors"

var (
	// ErrPurchaseNotFound 購入記録が見つからないエラー
	ErrPurchaseNotFound = errors.New("purchase not found")
	// ErrInvalidPurchase 無効な購入記録エラー
	ErrInvalidPurchase = errors.New("invalid purchase")
	// ErrInvalidPurchaseID 購入IDが無効
	ErrInvalidPurchaseID = errors.New("invalid purchase id")
	// ErrInvalidUserID ユーザーIDが無効
	ErrInvalidUserID = errors.New("invalid user id")
	// ErrInvalidItemID アイテムIDが無効
	ErrInvalidItemID = errors.New("invalid item id")
)
