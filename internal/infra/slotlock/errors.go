package slotlock

import "errors"

var (
	// ErrLockNotAcquired возвращается, когда слот удерживается другим запросом дольше времени ожидания
	ErrLockNotAcquired = errors.New("slotlock: slot is locked by another request")

	// ErrRedis возвращается при ошибках обращения к Redis
	ErrRedis = errors.New("slotlock: redis error")
)
