package udp_test

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/kursovoi/storefront/internal/transport/udp"
)

// startEchoServer — UDP-сервер, отвечающий на каждую датаграмму через reply.
func startEchoServer(t *testing.T, reply func(req string) string) string {
	t.Helper()

	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	go func() {
		buf := make([]byte, 65507)
		for {
			n, addr, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}
			if reply == nil {
				continue
			}
			resp := reply(string(buf[:n]))
			_, _ = conn.WriteTo([]byte(resp), addr)
		}
	}()

	return conn.LocalAddr().String()
}

func TestSend_RoundTrip(t *testing.T) {
	addr := startEchoServer(t, func(req string) string {
		if req != "getbasket|7" {
			return "ERROR|unexpected command"
		}
		return "1|2\n3|4"
	})

	tr := udp.New(addr, time.Second)
	resp, err := tr.Send(context.Background(), "getbasket|7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "1|2\n3|4" {
		t.Fatalf("unexpected response: %q", resp)
	}
}

func TestSend_TimeoutWhenNoReply(t *testing.T) {
	// сервер принимает и молчит — клиент должен отвалиться по таймауту
	addr := startEchoServer(t, nil)

	tr := udp.New(addr, 100*time.Millisecond)
	start := time.Now()
	_, err := tr.Send(context.Background(), "getproducts")
	elapsed := time.Since(start)

	var te *udp.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if !te.Timeout() {
		t.Fatalf("expected timeout error, got %v", te)
	}
	if te.Op != "read" {
		t.Fatalf("expected read op, got %q", te.Op)
	}
	if elapsed > 2*time.Second {
		t.Fatalf("timeout took too long: %v", elapsed)
	}
}

func TestSend_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := udp.New("127.0.0.1:1", time.Second)
	_, err := tr.Send(ctx, "getproducts")

	var te *udp.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected wrapped context.Canceled, got %v", err)
	}
}

func TestSend_ErrorMentionsAddr(t *testing.T) {
	addr := startEchoServer(t, nil)
	tr := udp.New(addr, 50*time.Millisecond)

	_, err := tr.Send(context.Background(), "getproducts")
	if err == nil || !strings.Contains(err.Error(), addr) {
		t.Fatalf("error must mention server addr, got %v", err)
	}
}
