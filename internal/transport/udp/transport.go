// Пакет udp — транспорт командного протокола: одна датаграмма-запрос,
// одна датаграмма-ответ, фиксированный таймаут ожидания. Никакой
// нумерации, подтверждений и повторов — at-most-once по построению.
package udp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/kursovoi/storefront/internal/ports"
	"github.com/kursovoi/storefront/pkg/metrics"
)

// Максимальный полезный размер UDP-датаграммы.
const maxDatagram = 65507

const defaultTimeout = 3 * time.Second

// Проверка соответствия порту.
var _ ports.CommandSender = (*Transport)(nil)

// TransportError — сбой отправки/приёма или таймаут. По такой ошибке
// нельзя судить, выполнил ли сервер команду: запрос мог быть обработан,
// а ответ — потерян.
type TransportError struct {
	Op      string // "dial" | "write" | "read"
	Addr    string
	Err     error
	timeout bool
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("udp %s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout — истёк таймаут ожидания ответа.
func (e *TransportError) Timeout() bool { return e.timeout }

// Transport отправляет команды на фиксированный адрес сервера.
// Соединение не переиспользуется: каждый вызов — отдельный сокет.
type Transport struct {
	addr    string
	timeout time.Duration
}

func New(addr string, timeout time.Duration) *Transport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Transport{addr: addr, timeout: timeout}
}

// Send выполняет один цикл запрос-ответ. Блокирует вызывающую горутину
// не дольше таймаута на запись и таймаута на чтение.
func (t *Transport) Send(ctx context.Context, command string) (string, error) {
	verb := commandVerb(command)

	if err := ctx.Err(); err != nil {
		return "", &TransportError{Op: "dial", Addr: t.addr, Err: err}
	}

	start := time.Now()
	resp, err := t.roundTrip(command)
	metrics.UDPCommandDuration.WithLabelValues(verb).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.UDPCommands.WithLabelValues(verb, "ok").Inc()
	case isTimeout(err):
		metrics.UDPCommands.WithLabelValues(verb, "timeout").Inc()
	default:
		metrics.UDPCommands.WithLabelValues(verb, "net_error").Inc()
	}
	return resp, err
}

func (t *Transport) roundTrip(command string) (string, error) {
	conn, err := net.Dial("udp", t.addr)
	if err != nil {
		return "", &TransportError{Op: "dial", Addr: t.addr, Err: err}
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(t.timeout)); err != nil {
		return "", &TransportError{Op: "write", Addr: t.addr, Err: err}
	}
	if _, err := conn.Write([]byte(command)); err != nil {
		return "", t.wrap("write", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(t.timeout)); err != nil {
		return "", &TransportError{Op: "read", Addr: t.addr, Err: err}
	}
	buf := make([]byte, maxDatagram)
	n, err := conn.Read(buf)
	if err != nil {
		return "", t.wrap("read", err)
	}
	return string(buf[:n]), nil
}

func (t *Transport) wrap(op string, err error) *TransportError {
	te := &TransportError{Op: op, Addr: t.addr, Err: err}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		te.timeout = true
	}
	return te
}

func isTimeout(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Timeout()
}

// commandVerb — первый токен команды, для меток метрик.
func commandVerb(command string) string {
	if i := strings.IndexByte(command, '|'); i >= 0 {
		return command[:i]
	}
	return command
}
