package substrate

import (
	"context"
	"sync"
)

// Pipe 单向字节通道
//
// 写端与读端可以位于不同进程，数据只以字节副本的形式穿过。
// 关闭是可观察的终止状态：
//   - CloseWrite 写端关闭，读端读完剩余数据后得到 ErrClosed
//   - CloseRead  读端关闭，剩余数据被丢弃，写端立即得到 ErrClosed
//
// 两种关闭都可以携带原因，读写方拿到的错误同时满足
// errors.Is(err, ErrClosed) 和 errors.Is(err, cause)。
//
// Pipe 对多个写者和多个读者都是安全的，顺序为入队顺序。
type Pipe struct {
	mu       sync.Mutex
	queue    [][]byte
	capacity int

	writeClosed bool
	writeErr    error
	readClosed  bool
	readErr     error
	dropped     int

	// 容量为 1 的信号通道，成功一方会在条件仍成立时继续传递信号
	notEmpty chan struct{}
	notFull  chan struct{}

	done      chan struct{}
	closeOnce sync.Once
}

// NewPipe 创建管道
// capacity 为 0 表示无界，写入永不阻塞；大于 0 时写满后写入阻塞（背压）
func NewPipe(capacity int) *Pipe {
	if capacity < 0 {
		capacity = 0
	}
	return &Pipe{
		capacity: capacity,
		notEmpty: make(chan struct{}, 1),
		notFull:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Capacity 返回容量，0 表示无界
func (p *Pipe) Capacity() int {
	return p.capacity
}

// Write 写入一条数据（复制后入队）
// 只有有界管道写满时才会阻塞，直到有空位、管道关闭或 ctx 取消
func (p *Pipe) Write(ctx context.Context, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)

	for {
		p.mu.Lock()
		if err := p.writeErrLocked(); err != nil {
			p.mu.Unlock()
			return err
		}
		if p.capacity == 0 || len(p.queue) < p.capacity {
			p.queue = append(p.queue, buf)
			hasRoom := p.capacity == 0 || len(p.queue) < p.capacity
			p.mu.Unlock()

			signal(p.notEmpty)
			if hasRoom && p.capacity > 0 {
				signal(p.notFull)
			}
			return nil
		}
		p.mu.Unlock()

		select {
		case <-p.notFull:
		case <-p.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Read 读取下一条数据，阻塞直到有数据、管道关闭或 ctx 取消
func (p *Pipe) Read(ctx context.Context) ([]byte, error) {
	for {
		data, ok, err := p.TryRead()
		if ok || err != nil {
			return data, err
		}

		select {
		case <-p.notEmpty:
		case <-p.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// TryRead 非阻塞读取
// 没有数据时返回 ok=false；管道已终止时返回错误
func (p *Pipe) TryRead() (data []byte, ok bool, err error) {
	p.mu.Lock()
	if p.readClosed {
		err = closedError(p.readErr)
		p.mu.Unlock()
		return nil, false, err
	}
	if len(p.queue) == 0 {
		if p.writeClosed {
			err = closedError(p.writeErr)
		}
		p.mu.Unlock()
		return nil, false, err
	}

	data = p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]
	remaining := len(p.queue)
	p.mu.Unlock()

	if remaining > 0 {
		signal(p.notEmpty)
	}
	if p.capacity > 0 {
		signal(p.notFull)
	}
	return data, true, nil
}

// Len 返回排队中的数据条数
func (p *Pipe) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// Dropped 返回因读端关闭而被丢弃的数据条数
func (p *Pipe) Dropped() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}

// CloseWrite 关闭写端，cause 为关闭原因（可为 nil）
// 已入队的数据仍可被读出，重复调用无效
func (p *Pipe) CloseWrite(cause error) {
	p.mu.Lock()
	if p.writeClosed {
		p.mu.Unlock()
		return
	}
	p.writeClosed = true
	p.writeErr = cause
	p.mu.Unlock()

	p.closeOnce.Do(func() { close(p.done) })
}

// CloseRead 关闭读端，cause 为关闭原因（可为 nil）
// 返回被丢弃的未读数据条数，重复调用返回 0
func (p *Pipe) CloseRead(cause error) int {
	p.mu.Lock()
	if p.readClosed {
		p.mu.Unlock()
		return 0
	}
	p.readClosed = true
	p.readErr = cause
	n := len(p.queue)
	p.dropped += n
	p.queue = nil
	p.mu.Unlock()

	p.closeOnce.Do(func() { close(p.done) })
	return n
}

// Done 在任意一端首次关闭时关闭
func (p *Pipe) Done() <-chan struct{} {
	return p.done
}

func (p *Pipe) writeErrLocked() error {
	if p.readClosed {
		return closedError(p.readErr)
	}
	if p.writeClosed {
		return closedError(p.writeErr)
	}
	return nil
}

// signal 非阻塞地投递一次唤醒
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
