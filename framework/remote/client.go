package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"grps/common/biz"
	"grps/common/logs"
	"grps/framework/protocol"
)

type State int32

const (
	Unconnected State = iota
	Connected
	ShuttingDown
	Closed
)

func (s State) String() string {
	switch s {
	case Unconnected:
		return "Unconnected"
	case Connected:
		return "Connected"
	case ShuttingDown:
		return "ShuttingDown"
	case Closed:
		return "Closed"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Client 一个Client只持有一条到服务端的连接
// Unconnected -> Connected -> ShuttingDown -> Closed，Closed 之后不可再用
type Client struct {
	opts *clientOptions

	mu         sync.Mutex
	state      State
	connecting bool //Connect进行中 等待连接就绪时不持有锁
	target     string
	conn       *grpc.ClientConn
	stub       protocol.GrpsServiceClient

	inflight sync.WaitGroup
}

func NewClient(opts ...Option) *Client {
	options := defaultOptions()
	for _, o := range opts {
		o(options)
	}
	return &Client{opts: options}
}

// Dial NewClient + Connect
func Dial(ctx context.Context, target string, opts ...Option) (*Client, error) {
	c := NewClient(opts...)
	if err := c.Connect(ctx, target); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect target必须是host:port格式，格式错误直接返回 不会发起网络请求
// 默认不等待连接建立，传输层的错误在第一次Predict时才暴露；WithBlock(true)时等待连接就绪
func (c *Client) Connect(ctx context.Context, target string) error {
	c.mu.Lock()
	if c.state != Unconnected || c.connecting {
		state := c.state
		c.mu.Unlock()
		return biz.InvalidStateError.Wrap(target, fmt.Errorf("connect in state %s", state))
	}
	c.connecting = true
	c.mu.Unlock()

	conn, err := c.dial(ctx, target)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.connecting = false
	if err != nil {
		return err
	}
	//等待期间被Close了
	if c.state != Unconnected {
		_ = conn.Close()
		return biz.InvalidStateError.Wrap(target, fmt.Errorf("closed while connecting, state %s", c.state))
	}
	c.conn = conn
	c.stub = protocol.NewGrpsServiceClient(conn)
	c.target = target
	c.state = Connected
	logs.Debug("grpc client connected, target=%s block=%v", target, c.opts.block)
	return nil
}

func (c *Client) dial(ctx context.Context, target string) (*grpc.ClientConn, error) {
	if err := checkTarget(target); err != nil {
		return nil, biz.ConnectionError.Wrap(target, err)
	}
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(c.opts.interceptors...),
	}
	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, biz.ConnectionError.Wrap(target, err)
	}
	if c.opts.block {
		if err := waitReady(ctx, conn, c.opts.dialTimeout); err != nil {
			_ = conn.Close()
			logs.Warn("grpc connect %s failed,err:%v", target, err)
			return nil, biz.ConnectionError.Wrap(target, err)
		}
	}
	return conn, nil
}

func checkTarget(target string) error {
	if target == "" {
		return errors.New("empty target")
	}
	_, port, err := net.SplitHostPort(target)
	if err != nil {
		return err
	}
	p, err := strconv.Atoi(port)
	if err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid port %q", port)
	}
	return nil
}

// waitReady 连接进入TransientFailure时立即返回 不等待重连
func waitReady(ctx context.Context, conn *grpc.ClientConn, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	conn.Connect()
	for {
		s := conn.GetState()
		switch s {
		case connectivity.Ready:
			return nil
		case connectivity.TransientFailure:
			return errors.New("transport unreachable")
		case connectivity.Shutdown:
			return errors.New("connection shut down")
		}
		if !conn.WaitForStateChange(ctx, s) {
			return ctx.Err()
		}
	}
}

// Predict 同步调用，阻塞直到收到回包或者调用失败
func (c *Client) Predict(ctx context.Context, req *protocol.Envelope) (*protocol.Envelope, error) {
	c.mu.Lock()
	if c.state != Connected {
		state, target := c.state, c.target
		c.mu.Unlock()
		return nil, biz.InvalidStateError.Wrap(target, fmt.Errorf("predict in state %s", state))
	}
	c.inflight.Add(1)
	stub, target := c.stub, c.target
	c.mu.Unlock()
	defer c.inflight.Done()

	ctx, cancel := context.WithTimeout(ctx, c.opts.callTimeout)
	defer cancel()
	resp, err := stub.Predict(ctx, req)
	if err != nil {
		return nil, classify(target, err)
	}
	return resp, nil
}

func classify(target string, err error) error {
	st := status.Convert(err)
	if st.Code() == codes.DeadlineExceeded {
		return biz.TimeoutError.Wrap(target, err)
	}
	return biz.RpcError.WithStatus(target, st)
}

// Close 最多等待grace让在途请求完成，超时后强制关闭连接 在途请求会被中断
// 重复调用是空操作
func (c *Client) Close(grace time.Duration) {
	c.mu.Lock()
	switch c.state {
	case Unconnected:
		c.state = Closed
		c.mu.Unlock()
		return
	case Connected:
	default:
		c.mu.Unlock()
		return
	}
	c.state = ShuttingDown
	conn, target := c.conn, c.target
	c.mu.Unlock()

	if grace > 0 {
		done := make(chan struct{})
		go func() {
			c.inflight.Wait()
			close(done)
		}()
		timer := time.NewTimer(grace)
		select {
		case <-done:
		case <-timer.C:
			logs.Warn("grpc client %s: grace period %v elapsed, force close", target, grace)
		}
		timer.Stop()
	}
	if err := conn.Close(); err != nil {
		logs.Warn("grpc client %s close err:%v", target, err)
	}

	c.mu.Lock()
	c.state = Closed
	c.conn = nil
	c.stub = nil
	c.mu.Unlock()
	logs.Debug("grpc client %s closed", target)
}
