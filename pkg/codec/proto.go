package codec

import "google.golang.org/protobuf/proto"

type protoCodec[T proto.Message] struct{}

// Proto 返回 protobuf 消息的编解码器
// T 必须是生成代码中的指针类型，例如 *wrapperspb.StringValue
func Proto[T proto.Message]() Codec[T] {
	return protoCodec[T]{}
}

func (protoCodec[T]) Name() string { return "proto" }

func (protoCodec[T]) Encode(v T) ([]byte, error) {
	data, err := proto.Marshal(v)
	if err != nil {
		return nil, newError[T]("proto", OpEncode, err)
	}
	return data, nil
}

func (protoCodec[T]) Decode(data []byte) (T, error) {
	var zero T
	// 空字节是默认消息的合法编码，不视为错误
	// 生成代码的 ProtoReflect 允许 nil 接收者，借此拿到消息类型
	v, ok := zero.ProtoReflect().New().Interface().(T)
	if !ok {
		return zero, newError[T]("proto", OpDecode, ErrUnknownKind)
	}
	if err := proto.Unmarshal(data, v); err != nil {
		return zero, newError[T]("proto", OpDecode, err)
	}
	return v, nil
}
