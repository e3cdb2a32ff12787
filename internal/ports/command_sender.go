package ports

import "context"

// CommandSender — один запрос-датаграмма, один ответ-датаграмма.
// Ошибка отправки/приёма НЕ означает, что сервер команду не выполнил:
// запрос мог дойти, а ответ — потеряться. Повторов на этом уровне нет.
type CommandSender interface {
	Send(ctx context.Context, command string) (string, error)
}
