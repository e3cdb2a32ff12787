// udpprobe — консольная отладка командного протокола: отправляет одну
// сырую команду торговому серверу и печатает ответ как есть.
//
//	go run ./cmd/udpprobe -addr 127.0.0.1:12345 "getproducts|1|2|3"
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kursovoi/storefront/internal/transport/udp"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:12345", "адрес торгового сервера (host:port)")
	timeout := flag.Duration("timeout", 3*time.Second, "таймаут ожидания ответа")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: udpprobe [-addr host:port] [-timeout 3s] <command>")
		os.Exit(2)
	}

	transport := udp.New(*addr, *timeout)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout+time.Second)
	defer cancel()

	reply, err := transport.Send(ctx, flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(reply)
}
