// file: models/level.go
package models

// Level 关卡，按 Order 升序展示，题目按关卡分组
type Level struct {
	ID          uint32 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	// order 是 SQL 保留字，列名改用 sort_order
	Order int `gorm:"column:sort_order;uniqueIndex;not null" json:"order"`
}

func (Level) TableName() string {
	return "ctfquest_level"
}
