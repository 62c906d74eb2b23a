package actor

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/lwmacct/251216-go-pkg-wactor/pkg/codec"
	"github.com/lwmacct/251216-go-pkg-wactor/pkg/substrate"
)

// Link 调用方持有的类型化双向连接
//
// Link 只持有两条管道的调用方端点：输入写端与输出读端，
// 从不直接引用进程本身。Actor 崩溃只会表现为管道终止。
//
// Link 可以通过 [Link.Clone] 分给多个持有者。所有副本共享同一对管道：
// 输入按到达管道的先后合并，每条输出只会被其中一个副本收到。
// 最后一个副本关闭（或被回收）时输入管道关闭，Actor 处理完已排队的输入后退出。
type Link[In, Out any] struct {
	h *handle[In, Out]
}

// conn 所有副本共享的连接状态
type conn[In, Out any] struct {
	name      string
	processID string
	in        *substrate.Pipe
	out       *substrate.Pipe
	input     codec.Codec[In]
	output    codec.Codec[Out]
	refs      atomic.Int32
}

// acquire 增加引用；连接已释放时返回 false
func (c *conn[In, Out]) acquire() bool {
	for {
		n := c.refs.Load()
		if n <= 0 {
			return false
		}
		if c.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// release 减少引用，最后一个引用关闭两条管道的调用方端点
func (c *conn[In, Out]) release() {
	if c.refs.Add(-1) == 0 {
		c.in.CloseWrite(nil)
		c.out.CloseRead(nil)
	}
}

// handle 单个 Link 副本的状态，运行时回收 Link 时据此释放引用
type handle[In, Out any] struct {
	c      *conn[In, Out]
	closed atomic.Bool
}

func (h *handle[In, Out]) close() {
	if h.closed.CompareAndSwap(false, true) {
		h.c.release()
	}
}

func newLink[In, Out any](kind *Kind[In, Out], processID string, in, out *substrate.Pipe) *Link[In, Out] {
	c := &conn[In, Out]{
		name:      kind.Name,
		processID: processID,
		in:        in,
		out:       out,
		input:     kind.Input,
		output:    kind.Output,
	}
	c.refs.Store(1)
	return wrap(&handle[In, Out]{c: c})
}

func wrap[In, Out any](h *handle[In, Out]) *Link[In, Out] {
	l := &Link[In, Out]{h: h}
	// Link 不可达时等同于 Close
	runtime.AddCleanup(l, func(h *handle[In, Out]) { h.close() }, h)
	return l
}

// Name 返回 Actor 种类名称
func (l *Link[In, Out]) Name() string { return l.h.c.name }

// ProcessID 返回 Actor 所在进程的 ID，可用于 System.Get 查询
func (l *Link[In, Out]) ProcessID() string { return l.h.c.processID }

// Send 发送输入（入队即返回）
// 输入管道无界时不阻塞；Actor 已终止或 Link 已关闭时返回错误，不会静默丢弃
func (l *Link[In, Out]) Send(msg In) error {
	return l.SendContext(context.Background(), msg)
}

// SendContext 发送输入，有界邮箱写满时阻塞直到有空位或 ctx 取消
func (l *Link[In, Out]) SendContext(ctx context.Context, msg In) error {
	if l.h.closed.Load() {
		return ErrLinkClosed
	}
	data, err := l.h.c.input.Encode(msg)
	if err != nil {
		return err
	}
	err = l.h.c.in.Write(ctx, data)
	// 阻塞写入期间 Link 必须保持可达，否则回收会关闭自己正在写的管道
	runtime.KeepAlive(l)
	return err
}

// Receive 阻塞直到收到下一条输出
// 输出管道在有值之前终止时返回 ErrChannelClosed
func (l *Link[In, Out]) Receive() (Out, error) {
	return l.ReceiveContext(context.Background())
}

// ReceiveContext 阻塞直到收到下一条输出、管道终止或 ctx 取消
func (l *Link[In, Out]) ReceiveContext(ctx context.Context) (Out, error) {
	var zero Out
	if l.h.closed.Load() {
		return zero, ErrLinkClosed
	}
	data, err := l.h.c.out.Read(ctx)
	runtime.KeepAlive(l)
	if err != nil {
		return zero, err
	}
	return l.h.c.output.Decode(data)
}

// ReceiveTimeout 带超时的 Receive，超时返回 *ResponseTimeout
func (l *Link[In, Out]) ReceiveTimeout(timeout time.Duration) (Out, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := l.ReceiveContext(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return out, &ResponseTimeout{ProcessID: l.ProcessID(), Timeout: timeout}
	}
	return out, err
}

// TryReceive 非阻塞接收
// 没有排队的输出时返回 ok=false；管道已终止时返回错误
func (l *Link[In, Out]) TryReceive() (out Out, ok bool, err error) {
	if l.h.closed.Load() {
		return out, false, ErrLinkClosed
	}
	data, ok, err := l.h.c.out.TryRead()
	if !ok {
		return out, false, err
	}
	out, err = l.h.c.output.Decode(data)
	return out, err == nil, err
}

// Get 发送输入并等待下一条输出
// 适用于每条输入恰好产生一条输出的 Actor
func (l *Link[In, Out]) Get(msg In) (Out, error) {
	if err := l.Send(msg); err != nil {
		var zero Out
		return zero, err
	}
	return l.Receive()
}

// Pending 返回已排队但尚未读取的输出数量
func (l *Link[In, Out]) Pending() int {
	return l.h.c.out.Len()
}

// Clone 创建共享同一 Actor 的新副本
// 在已关闭的 Link 上调用时返回一个同样已关闭的副本
func (l *Link[In, Out]) Clone() *Link[In, Out] {
	h := &handle[In, Out]{c: l.h.c}
	if l.h.closed.Load() || !l.h.c.acquire() {
		h.closed.Store(true)
		return &Link[In, Out]{h: h}
	}
	return wrap(h)
}

// Close 关闭此副本，重复调用无效
// 最后一个副本关闭后 Actor 读完剩余输入即退出，未读的输出被丢弃
func (l *Link[In, Out]) Close() error {
	l.h.close()
	return nil
}

// Done 在 Actor 终止或所有副本关闭后关闭
func (l *Link[In, Out]) Done() <-chan struct{} {
	return l.h.c.out.Done()
}
