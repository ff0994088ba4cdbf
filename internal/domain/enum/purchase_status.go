package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PurchaseStatus represents the approval state of a supplier purchase.
// Only approved purchases contribute input VAT to a tax return.
type PurchaseStatus int

const (
	PurchaseStatusPending PurchaseStatus = iota
	PurchaseStatusApproved
	PurchaseStatusCancelled
)

var purchaseStatusNames = [...]string{"pending", "approved", "cancelled"}

func (s PurchaseStatus) String() string {
	if int(s) < 0 || int(s) >= len(purchaseStatusNames) {
		return "pending"
	}
	return purchaseStatusNames[s]
}

func (s PurchaseStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PurchaseStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PurchaseStatus(i)
		return nil
	}
	for i, name := range purchaseStatusNames {
		if name == str {
			*s = PurchaseStatus(i)
			return nil
		}
	}
	return nil
}

func (s PurchaseStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PurchaseStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PurchaseStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PurchaseStatus(v)
	case int:
		*s = PurchaseStatus(v)
	}
	return nil
}
