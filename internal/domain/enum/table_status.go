package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TableStatus represents the floor status of a dining table.
type TableStatus int

const (
	TableStatusAvailable TableStatus = iota
	TableStatusReserved
	TableStatusOccupied
)

var tableStatusNames = [...]string{"available", "reserved", "occupied"}

func (s TableStatus) String() string {
	if int(s) < 0 || int(s) >= len(tableStatusNames) {
		return "available"
	}
	return tableStatusNames[s]
}

func (s TableStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TableStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TableStatus(i)
		return nil
	}
	for i, name := range tableStatusNames {
		if name == str {
			*s = TableStatus(i)
			return nil
		}
	}
	return nil
}

func (s TableStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TableStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TableStatusAvailable
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TableStatus(v)
	case int:
		*s = TableStatus(v)
	}
	return nil
}
