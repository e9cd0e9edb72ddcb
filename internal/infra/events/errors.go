package events

import "errors"

var (
	// ErrUnknownDriver возвращается при неизвестном значении events.driver
	ErrUnknownDriver = errors.New("events: unknown driver")

	// ErrPublish возвращается при ошибке отправки события брокеру
	ErrPublish = errors.New("events: failed to publish event")

	// ErrConnect возвращается при ошибке подключения к брокеру
	ErrConnect = errors.New("events: failed to connect to broker")
)
