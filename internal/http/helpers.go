package http

import (
	"strings"
	"time"

	"foodloss/internal/core"
)

// User-facing messages.
const (
	msgRequiredFields     = "食材名、購入日/賞味期限、保存場所は必須です。"
	msgInvalidDate        = "購入日/賞味期限は YYYY-MM-DD 形式で指定してください。"
	msgNameTooLong        = "食材名は200文字以内で指定してください。"
	msgIngredientCreated  = "食材が正常に登録されました。"
	msgIngredientFailed   = "食材の登録に失敗しました: "
	msgListFailed         = "食材リストの取得に失敗しました: "
	msgContributionFailed = "貢献度スコアの取得に失敗しました: "
	msgInvalidAmount      = "有効な貢献量を指定してください。"
	msgContributionAdded  = "貢献度が追加されました。"
	msgAddFailed          = "貢献度の追加に失敗しました: "
	msgMalformedBody      = "リクエストの形式が正しくありません。"
	msgMethodNotAllowed   = "このメソッドは許可されていません。"
	msgRateLimited        = "リクエストが多すぎます。しばらくしてから再度お試しください。"
	msgNotFound           = "見つかりません。"
)

// ingredientResponse is the wire shape of a listed ingredient.
type ingredientResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	PurchaseDate    string `json:"purchase_date"`
	StorageLocation string `json:"storage_location"`
	AddedAt         string `json:"added_at"`
	Status          string `json:"status"`
}

func toIngredientResponses(items []core.ClassifiedIngredient) []ingredientResponse {
	out := make([]ingredientResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ingredientResponse{
			ID:              it.ID,
			Name:            it.Name,
			PurchaseDate:    it.PurchaseDate,
			StorageLocation: string(it.StorageLocation),
			AddedAt:         it.AddedAt.UTC().Format(time.RFC3339),
			Status:          string(it.Status),
		})
	}
	return out
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}
