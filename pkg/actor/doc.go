// Package actor 提供强类型的 Actor 运行层
//
// 每个 Actor 是独立的计算单元，运行在 substrate 提供的隔离进程中：
//   - 拥有私有状态（只被自己的进程循环访问，无需锁保护）
//   - 输入、输出消息集合在编译期确定
//   - 消息以字节形式穿过进程边界，由 codec 负责往返
//   - 崩溃被隔离在进程内，调用方只看到管道终止
//
// # 核心组件
//
// [Actor] 定义单步状态转移，[UpdateFunc] 提供函数式快捷方式。
//
// [Kind] 描述一种 Actor：无参构造函数与输入输出编解码器。
//
// [Run] 启动 Actor 并返回 [Link]：
//
//	sys := substrate.NewSystem("my-system")
//	defer sys.Shutdown()
//
//	link, err := actor.Run(sys, counterKind)
//	if err != nil {
//		return err
//	}
//	defer link.Close()
//
//	_ = link.Send(AddOne{})
//	out, err := link.Receive() // Count{N: 1}
//
// [Responder] 只在一次 Update 期间有效，可以发出任意数量的输出。
//
// # 顺序保证
//
// 输出按 Respond 的调用顺序到达，Respond 的顺序又由 Update 的顺序决定，
// Update 的顺序等于输入进入管道的顺序。不同 Actor 之间没有顺序保证。
//
// 多个 Link 副本（[Link.Clone]）发送到同一个 Actor 时，
// 输入按到达管道的先后合并（先到先处理）；每条输出只交给一个正在接收的副本。
//
// # 错误
//
// Send 与 Receive 都可能失败，失败意味着 Actor 已不存在：
// errors.Is(err, ErrChannelClosed) 总是成立。进程崩溃时错误同时满足
// errors.Is(err, ErrProcessFault)，解码失败时满足 errors.Is(err, codec.ErrCodec)。
//
// Update 中没有取消点：一次 Update 开始后总会执行完。
package actor
