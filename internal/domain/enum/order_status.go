package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the overall status of an order. The kitchen-phase
// values (pending through served) are derived from the line items; completed
// and cancelled are terminal and set by payment and cancellation only.
type OrderStatus int

const (
	OrderStatusPending OrderStatus = iota
	OrderStatusPreparing
	OrderStatusReady
	OrderStatusServed
	OrderStatusCompleted
	OrderStatusCancelled
)

var orderStatusNames = [...]string{"pending", "preparing", "ready", "served", "completed", "cancelled"}

func (s OrderStatus) String() string {
	if int(s) < 0 || int(s) >= len(orderStatusNames) {
		return "pending"
	}
	return orderStatusNames[s]
}

// IsTerminal reports whether the status can no longer change.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	for i, name := range orderStatusNames {
		if name == str {
			*s = OrderStatus(i)
			return nil
		}
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
