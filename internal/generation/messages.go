package generation

import (
	"fmt"
	"strings"

	"github.com/xgenie/xgenie-api/internal/redact"
)

// User-facing messages. They are shown verbatim by the client.
const (
	MessageOverloaded    = "AIサーバーが非常に混み合っています。自動リトライを行いましたが解決しませんでした。数分後にもう一度実行してみてください。"
	MessageRateLimited   = "リクエスト制限に達しました。約60秒ほど時間を置いてから再度お試しください。"
	MessageNotConfigured = "Gemini APIキーが設定されていません。環境変数または設定画面でキーを登録してください。"
	MessageEmptyResponse = "AIからの応答が空でした。"
	MessageCanceled      = "生成がキャンセルされました。"
	messageGenericPrefix = "投稿文の生成に失敗しました。"
)

// failureMessage picks the template for a terminal failure.
func failureMessage(signal Signal, err error) string {
	switch signal {
	case SignalOverloaded:
		return MessageOverloaded
	case SignalRateLimited:
		return MessageRateLimited
	case SignalEmptyResponse:
		return messageGenericPrefix + MessageEmptyResponse
	case SignalCanceled:
		return MessageCanceled
	default:
		return genericMessage(err)
	}
}

func genericMessage(err error) string {
	if err == nil {
		return messageGenericPrefix
	}
	detail := strings.TrimSpace(redact.Credentials(err.Error()))
	return fmt.Sprintf("%s詳細: %s", messageGenericPrefix, detail)
}
