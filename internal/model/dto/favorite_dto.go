package dto

// SaveFavoriteRequest 收藏商家请求
type SaveFavoriteRequest struct {
	Note string `json:"note" binding:"max=500"`
}

// FavoriteItem 收藏列表项
type FavoriteItem struct {
	ID      int64        `json:"id"`
	Note    string       `json:"note,omitempty"`
	SavedAt string       `json:"saved_at"`
	Listing *ListingItem `json:"listing"`
}
