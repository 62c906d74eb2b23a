package codec

import "encoding/json"

type jsonCodec[T any] struct{}

// JSON 返回具体类型 T 的 JSON 编解码器
//
// T 为接口类型时无法解码，请改用 [Union]。
func JSON[T any]() Codec[T] {
	return jsonCodec[T]{}
}

func (jsonCodec[T]) Name() string { return "json" }

func (jsonCodec[T]) Encode(v T) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, newError[T]("json", OpEncode, err)
	}
	return data, nil
}

func (jsonCodec[T]) Decode(data []byte) (T, error) {
	var v T
	if len(data) == 0 {
		return v, newError[T]("json", OpDecode, ErrEmpty)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, newError[T]("json", OpDecode, err)
	}
	return v, nil
}
