package protocol

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRejected — сервер ответил "FAIL": команда дошла и была отвергнута.
var ErrRejected = errors.New("command rejected by server")

// ServerError — ответ "ERROR|<сообщение>": сбой на стороне сервера.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return "server error"
	}
	return fmt.Sprintf("server error: %s", e.Message)
}

// Status — разобранная первая строка скалярного ответа.
type Status struct {
	OK bool
	// Payload — первая строка, если это не OK/FAIL/ERROR
	// (для authorize так приходит имя роли, опционально "роль|storeId").
	Payload string
}

// ParseStatus разбирает скалярный ответ сервера.
// "OK" → успех; "FAIL" → ErrRejected; "ERROR|msg" → *ServerError;
// любая другая непустая первая строка возвращается как Payload.
func ParseStatus(resp string) (Status, error) {
	line := resp
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)

	switch {
	case strings.EqualFold(line, "OK"):
		return Status{OK: true}, nil
	case strings.EqualFold(line, "FAIL"):
		return Status{}, ErrRejected
	case strings.HasPrefix(strings.ToUpper(line), "ERROR"):
		msg := ""
		if parts := strings.SplitN(line, FieldDelim, 2); len(parts) == 2 {
			msg = parts[1]
		}
		return Status{}, &ServerError{Message: msg}
	case line == "":
		return Status{}, &ServerError{Message: "empty response"}
	}
	return Status{Payload: line}, nil
}

// expectOK — для мутирующих команд, где допустим только "OK".
func expectOK(resp string) error {
	st, err := ParseStatus(resp)
	if err != nil {
		return err
	}
	if !st.OK {
		return &ServerError{Message: fmt.Sprintf("unexpected response %q", st.Payload)}
	}
	return nil
}
