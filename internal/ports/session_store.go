package ports

import "context"

// SessionStore — значения, привязанные к сессии (идентификатор из cookie).
// Значения непрозрачные ([]byte); время жизни сессии продлевается
// при каждом обращении на запись.
type SessionStore interface {
	GetValue(ctx context.Context, sessionID, key string) ([]byte, bool)
	SetValue(ctx context.Context, sessionID, key string, value []byte) error
	DeleteValue(ctx context.Context, sessionID, key string) error
	// Drop — полное удаление сессии (logout, удаление аккаунта).
	Drop(ctx context.Context, sessionID string) error
}
