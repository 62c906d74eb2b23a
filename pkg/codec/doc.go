// Package codec 定义消息编解码边界
//
// Actor 与调用方运行在不同的隔离进程中，彼此不共享内存，
// 所有 Input / Output 消息都要先编码为字节再穿过边界。
//
// [Codec] 是唯一的契约，必须满足往返律：
//
//	Decode(Encode(x)) == x
//
// 内置实现：
//   - [JSON] 具体类型的 JSON 编码（默认）
//   - [Union] 以 Kind() 区分变体的标签联合
//   - [YAML] 便于人工阅读的 YAML 编码
//   - [Proto] protobuf 二进制编码
//
// 所有解码失败都返回 [*Error]，可用 errors.Is(err, ErrCodec) 判断。
package codec
