package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TaxPeriodStatus represents whether a tax period's return has been filed.
type TaxPeriodStatus int

const (
	TaxPeriodStatusOpen TaxPeriodStatus = iota
	TaxPeriodStatusSubmitted
)

var taxPeriodStatusNames = [...]string{"open", "submitted"}

func (s TaxPeriodStatus) String() string {
	if int(s) < 0 || int(s) >= len(taxPeriodStatusNames) {
		return "open"
	}
	return taxPeriodStatusNames[s]
}

func (s TaxPeriodStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TaxPeriodStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TaxPeriodStatus(i)
		return nil
	}
	for i, name := range taxPeriodStatusNames {
		if name == str {
			*s = TaxPeriodStatus(i)
			return nil
		}
	}
	return nil
}

func (s TaxPeriodStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TaxPeriodStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TaxPeriodStatusOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TaxPeriodStatus(v)
	case int:
		*s = TaxPeriodStatus(v)
	}
	return nil
}
