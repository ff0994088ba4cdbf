package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a payment was made.
type PaymentMethod int

const (
	PaymentMethodCash PaymentMethod = iota
	PaymentMethodCard
	PaymentMethodOther
)

var paymentMethodNames = [...]string{"cash", "card", "other"}

func (m PaymentMethod) String() string {
	if int(m) < 0 || int(m) >= len(paymentMethodNames) {
		return "other"
	}
	return paymentMethodNames[m]
}

// ParsePaymentMethod maps a wire name to its method; ok is false for unknown names.
func ParsePaymentMethod(name string) (PaymentMethod, bool) {
	for i, n := range paymentMethodNames {
		if n == name {
			return PaymentMethod(i), true
		}
	}
	return PaymentMethodOther, false
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	if parsed, ok := ParsePaymentMethod(str); ok {
		*m = parsed
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}

// PaymentStatus represents the lifecycle of a payment.
type PaymentStatus int

const (
	PaymentStatusPending PaymentStatus = iota
	PaymentStatusCompleted
	PaymentStatusFailed
	PaymentStatusRefunded
)

var paymentStatusNames = [...]string{"pending", "completed", "failed", "refunded"}

func (s PaymentStatus) String() string {
	if int(s) < 0 || int(s) >= len(paymentStatusNames) {
		return "pending"
	}
	return paymentStatusNames[s]
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	for i, name := range paymentStatusNames {
		if name == str {
			*s = PaymentStatus(i)
			return nil
		}
	}
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}
