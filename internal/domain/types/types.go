// Package types contains the API read shapes returned by explore queries.
package types

// Car is the public projection of a car record.
type Car struct {
	ID         string   `json:"id"`
	Make       string   `json:"make"`
	Model      string   `json:"model"`
	Year       int      `json:"year"`
	PowerHp    string   `json:"power_hp,omitempty"`
	Images     []string `json:"images,omitempty"`
	IsFeatured bool     `json:"is_featured,omitempty"`
}

// Owner is the public projection of a car's owner.
type Owner struct {
	Name       string `json:"name"`
	Username   string `json:"username,omitempty"`
	PictureURL string `json:"picture_url,omitempty"`
}

// FeedCar is one entry of an explore result. Score and IsTrending are set
// only by the ranked feed; ViewCount only by the trending leaderboard.
type FeedCar struct {
	Car        Car     `json:"car"`
	Owner      Owner   `json:"owner"`
	Score      float64 `json:"score,omitempty"`
	IsTrending bool    `json:"is_trending,omitempty"`
	ViewCount  int     `json:"view_count,omitempty"`
}

// FeedPage is a paginated explore result.
type FeedPage struct {
	Cars       []FeedCar `json:"cars"`
	NextCursor *string   `json:"next_cursor"`
	HasMore    bool      `json:"has_more"`
}

// TrendingResult is the trending leaderboard response.
type TrendingResult struct {
	Cars []FeedCar `json:"cars"`
}
