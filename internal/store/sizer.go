package store

import "reflect"

// Sizer は自身のバイト数を申告できる値です。
// DefaultSize は Sizer を実装した値に対してはその結果をそのまま使います。
type Sizer interface {
	NBytes() int64
}

// SizeFunc は値のバイト数を返す関数です。0 以下を返した値は Put で拒否されます。
type SizeFunc func(v any) int64

const (
	stringHeader = 16
	sliceHeader  = 24
	maxSizeDepth = 8 // 循環参照対策
)

// DefaultSize は値のおおよそのバイト数を返します。
// 文字列・スライス・マップ・ポインタ・構造体は中身までたどって見積もり、
// それ以外は型のサイズを返します。nil は 0 です。
func DefaultSize(v any) int64 {
	switch x := v.(type) {
	case nil:
		return 0
	case Sizer:
		return x.NBytes()
	case string:
		return stringHeader + int64(len(x))
	case []byte:
		return sliceHeader + int64(len(x))
	}
	return sizeOf(reflect.ValueOf(v), 0)
}

func sizeOf(rv reflect.Value, depth int) int64 {
	return int64(rv.Type().Size()) + indirectSize(rv, depth)
}

// indirectSize は値が参照している先のバイト数を返す。
func indirectSize(rv reflect.Value, depth int) int64 {
	if depth >= maxSizeDepth {
		return 0
	}
	switch rv.Kind() {
	case reflect.String:
		return int64(rv.Len())
	case reflect.Slice:
		if rv.IsNil() {
			return 0
		}
		et := rv.Type().Elem()
		n := int64(rv.Len()) * int64(et.Size())
		if hasIndirect(et) {
			for i := range rv.Len() {
				n += indirectSize(rv.Index(i), depth+1)
			}
		}
		return n
	case reflect.Array:
		var n int64
		if hasIndirect(rv.Type().Elem()) {
			for i := range rv.Len() {
				n += indirectSize(rv.Index(i), depth+1)
			}
		}
		return n
	case reflect.Map:
		if rv.IsNil() {
			return 0
		}
		t := rv.Type()
		n := int64(rv.Len()) * int64(t.Key().Size()+t.Elem().Size())
		if hasIndirect(t.Key()) || hasIndirect(t.Elem()) {
			iter := rv.MapRange()
			for iter.Next() {
				n += indirectSize(iter.Key(), depth+1) + indirectSize(iter.Value(), depth+1)
			}
		}
		return n
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return 0
		}
		return sizeOf(rv.Elem(), depth+1)
	case reflect.Struct:
		var n int64
		for i := range rv.NumField() {
			n += indirectSize(rv.Field(i), depth+1)
		}
		return n
	default:
		return 0
	}
}

func hasIndirect(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Pointer, reflect.Interface:
		return true
	case reflect.Array:
		return hasIndirect(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasIndirect(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}
