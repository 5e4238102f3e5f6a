// Package socket 维护与 Pulse 服务端的实时消息连接
package socket

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	minBackoff     = time.Second
	maxBackoff     = 2 * time.Minute
	handshakeLimit = 15 * time.Second
)

// ErrClosed 连接已关闭
var ErrClosed = errors.New("socket: connection closed")

// Handler 处理服务端推送的消息
type Handler func(message []byte)

// Connection 自动重连的 websocket 连接
type Connection struct {
	url     string
	header  http.Header
	handler Handler
	log     *logrus.Entry
	dialer  *websocket.Dialer

	mu     sync.Mutex
	conn   *websocket.Conn
	cancel context.CancelFunc
	closed bool
	done   chan struct{}
}

// New 创建连接,调用 Start 后才会真正连接
func New(url string, header http.Header, handler Handler) *Connection {
	id := uuid.NewString()
	return &Connection{
		url:     url,
		header:  header,
		handler: handler,
		log:     logrus.WithFields(logrus.Fields{"component": "socket", "conn": id}),
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeLimit,
		},
		done: make(chan struct{}),
	}
}

// Start 在后台建立连接,断开后按指数退避重连,直到 Close 或 ctx 结束
func (c *Connection) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.cancel != nil {
		c.mu.Unlock()
		return fmt.Errorf("socket: already started")
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	go c.loop(ctx)
	return nil
}

// Done 后台循环退出后关闭
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

// Connected 当前是否已连接
func (c *Connection) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *Connection) loop(ctx context.Context) {
	defer close(c.done)

	backoff := minBackoff
	for {
		err := c.session(ctx)
		if ctx.Err() != nil {
			return
		}
		c.log.WithError(err).WithField("retry_in", backoff).Warn("连接断开,准备重连")

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// session 建立一次连接并读取直到出错
func (c *Connection) session(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url, c.header)
	if err != nil {
		return fmt.Errorf("连接失败: %w", err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		conn.Close()
		return ErrClosed
	}
	c.conn = conn
	c.mu.Unlock()
	c.log.Info("已连接到服务端")

	defer func() {
		c.mu.Lock()
		if c.conn == conn {
			c.conn = nil
		}
		c.mu.Unlock()
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	pingDone := make(chan struct{})
	defer close(pingDone)
	go c.ping(conn, pingDone)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if c.handler != nil {
			c.handler(message)
		}
	}
}

func (c *Connection) ping(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Debug("发送心跳失败")
				return
			}
		}
	}
}

// Close 发送关闭帧并停止重连,可以重复调用
func (c *Connection) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	conn := c.conn
	cancel := c.cancel
	c.mu.Unlock()

	var err error
	if conn != nil {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		if werr := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); werr != nil && !errors.Is(werr, websocket.ErrCloseSent) {
			err = fmt.Errorf("发送关闭帧失败: %w", werr)
		}
		conn.Close()
	}
	if cancel != nil {
		cancel()
	} else {
		close(c.done)
	}

	c.log.Info("连接已关闭")
	return err
}
