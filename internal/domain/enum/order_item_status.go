package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderItemStatus represents the kitchen status of a single line item.
type OrderItemStatus int

const (
	OrderItemStatusPending OrderItemStatus = iota
	OrderItemStatusPreparing
	OrderItemStatusReady
	OrderItemStatusServed
)

var orderItemStatusNames = [...]string{"pending", "preparing", "ready", "served"}

func (s OrderItemStatus) String() string {
	if int(s) < 0 || int(s) >= len(orderItemStatusNames) {
		return "pending"
	}
	return orderItemStatusNames[s]
}

// ParseOrderItemStatus maps a wire name to its status; ok is false for
// unknown names.
func ParseOrderItemStatus(name string) (OrderItemStatus, bool) {
	for i, n := range orderItemStatusNames {
		if n == name {
			return OrderItemStatus(i), true
		}
	}
	return OrderItemStatusPending, false
}

func (s OrderItemStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderItemStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderItemStatus(i)
		return nil
	}
	if parsed, ok := ParseOrderItemStatus(str); ok {
		*s = parsed
	}
	return nil
}

func (s OrderItemStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderItemStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderItemStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderItemStatus(v)
	case int:
		*s = OrderItemStatus(v)
	}
	return nil
}
