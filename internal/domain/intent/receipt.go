package intent

// Receipt インテントの決済状況レシート
// 終端ステータス（completed / failed / refunded）に達するまでポーリングで観測する
type Receipt struct {
	IntentID  string `json:"intentId"`
	Status    Status `json:"status"`
	OriginTx  string `json:"originTx,omitempty"`
	DestTx    string `json:"destTx,omitempty"`
	ErrorText string `json:"errorText,omitempty"`
	UpdatedAt int64  `json:"updatedAt"` // UNIX秒
}
