package models

import "time"

// MaxCodeLength максимальная длина короткого кода.
const MaxCodeLength = 12

// ShortLink структура модели хранения сокращенной ссылки.
//
// Уникальность Code и OriginalURL обеспечивается индексами на уровне хранилища,
// проверки в сервисном слое носят лишь рекомендательный характер.
type ShortLink struct {
	ID          uint      `gorm:"primaryKey"                                   json:"id"`
	OriginalURL string    `gorm:"column:original_url;not null;uniqueIndex"    json:"originalUrl"`
	Code        string    `gorm:"column:code;size:12;not null;uniqueIndex"    json:"code"`
	CreatedAt   time.Time `gorm:"column:created_at"                            json:"createdAt"`
	Hits        uint64    `gorm:"column:hits;not null;default:0"               json:"hits"`
}

// TableName имя таблицы для gorm.
func (ShortLink) TableName() string {
	return "urls"
}
