package models

// Food is a single registered menu item.
// It corresponds to a row of the 'foods' table.
type Food struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DefaultSeedFoods are inserted when a brand-new store is created.
var DefaultSeedFoods = []string{
	"짜장면", "김치찌개", "치킨", "파스타", "피자",
	"족발", "보쌈", "초밥", "스테이크",
}
