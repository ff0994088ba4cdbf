package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ReservationStatus represents the lifecycle of a reservation.
type ReservationStatus int

const (
	ReservationStatusPending ReservationStatus = iota
	ReservationStatusConfirmed
	ReservationStatusSeated
	ReservationStatusCompleted
	ReservationStatusCancelled
)

var reservationStatusNames = [...]string{"pending", "confirmed", "seated", "completed", "cancelled"}

func (s ReservationStatus) String() string {
	if int(s) < 0 || int(s) >= len(reservationStatusNames) {
		return "pending"
	}
	return reservationStatusNames[s]
}

func (s ReservationStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ReservationStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ReservationStatus(i)
		return nil
	}
	for i, name := range reservationStatusNames {
		if name == str {
			*s = ReservationStatus(i)
			return nil
		}
	}
	return nil
}

func (s ReservationStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ReservationStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ReservationStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ReservationStatus(v)
	case int:
		*s = ReservationStatus(v)
	}
	return nil
}
