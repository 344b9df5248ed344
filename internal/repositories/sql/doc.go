// Package sql предоставляет реализацию репозитория коротких ссылок поверх gorm (SQLite, PostgreSQL).
//
// Все методы репозитория преобразуют ошибки gorm в общие ошибки уровня репозитория
// с помощью ConvertErrorType:
//   - gorm.ErrDuplicatedKey -> repositories.ErrDuplicateKey
//   - gorm.ErrRecordNotFound -> repositories.ErrNotFound
//   - другие ошибки -> repositories.ErrUnknown
package sql
