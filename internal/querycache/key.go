package querycache

import "strings"

// Ресурсы, на которые раскладываются ключи кэша.
const (
	ResourceUser         = "user"
	ResourceBoxes        = "boxes"
	ResourceOrders       = "orders"
	ResourcePhotos       = "photos"
	ResourceSlots        = "slots"
	ResourceSubscription = "subscription"
)

// Wildcard — параметры селектора, совпадающие с любыми параметрами ресурса.
const Wildcard = "*"

// Key — ключ записи кэша: (ресурс, параметры).
type Key struct {
	Resource string
	Params   string
}

// NewKey — ключ с параметрами, склеенными через "/".
func NewKey(resource string, params ...string) Key {
	return Key{Resource: resource, Params: strings.Join(params, "/")}
}

// AnyOf — селектор (resource, *).
func AnyOf(resource string) Key {
	return Key{Resource: resource, Params: Wildcard}
}

func (k Key) String() string {
	if k.Params == "" {
		return k.Resource
	}
	return k.Resource + ":" + k.Params
}

// IsSelector — ключ с wildcard-параметрами.
func (k Key) IsSelector() bool { return k.Params == Wildcard }

// Matches — попадает ли ключ под селектор (точный ключ или (resource, *)).
func (k Key) Matches(sel Key) bool {
	if k.Resource != sel.Resource {
		return false
	}
	return sel.Params == Wildcard || sel.Params == k.Params
}
