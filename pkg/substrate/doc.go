// Package substrate 提供 Actor 运行所需的隔离基座
//
// 基座只负责三件事：
//   - [Pipe] 单向字节通道，关闭对另一端可见，不会无限阻塞
//   - [System.Spawn] 在独立 goroutine 中运行入口函数，panic 被隔离为 [*Fault]
//   - 存活进程注册表、统计与整体关闭
//
// 进程之间只通过 Pipe 交换字节，不共享可变状态：
//
//	sys := substrate.NewSystem("demo")
//	defer sys.Shutdown()
//
//	in := substrate.NewPipe(0)
//	proc, err := sys.Spawn("reader", func(p *substrate.Process) error {
//		data, err := in.Read(p.Context())
//		...
//	}, nil)
//
// 基座不理解消息类型，类型化的协议见 actor 包。
package substrate
