package actor

import (
	"github.com/lwmacct/251216-go-pkg-wactor/pkg/substrate"
)

// Run 启动一个 Actor 并返回它的 Link
//
// 这是创建 Actor 的唯一入口：分配输入、输出两条管道，
// 在新进程中运行进程循环，调用方持有输入写端与输出读端。
//
// 进程退出时（正常、解码失败或崩溃）输入管道的读端以退出原因关闭，
// 未处理的输入计为死信；输出管道的写端同样以退出原因关闭，
// 已发出的输出仍可被读出。
func Run[In, Out any](sys *substrate.System, kind *Kind[In, Out]) (*Link[In, Out], error) {
	if err := kind.validate(); err != nil {
		return nil, err
	}

	size := kind.MailboxSize
	if size == 0 {
		size = sys.Config().MailboxSize
	}
	in := substrate.NewPipe(size)
	out := substrate.NewPipe(0)

	proc, err := sys.Spawn(kind.Name, kind.loop(in, out), func(p *substrate.Process, cause error) {
		sys.ReportDeadLetters(p, in.CloseRead(cause))
		out.CloseWrite(cause)
	})
	if err != nil {
		return nil, err
	}

	return newLink(kind, proc.ID(), in, out), nil
}
