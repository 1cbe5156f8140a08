package lookup

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Text accepts both JSON strings and numbers. Other JSON values decode to
// the empty string.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*t = Text(v)
		return nil
	}
	var v json.Number
	if err := json.Unmarshal(data, &v); err != nil {
		// Objects, lists and booleans carry no key.
		return nil
	}
	*t = Text(v.String())
	return nil
}

func (t Text) String() string {
	return strings.TrimSpace(string(t))
}

// Item is one entry returned by a reference endpoint.
type Item struct {
	ID            Text `json:"id"`
	Code          Text `json:"code"`
	Name          Text `json:"name"`
	Description   Text `json:"description"`
	PayRange      Text `json:"pay_range"`
	Experience    Text `json:"experience"`
	Qualification Text `json:"qualification"`
	WorkHours     Text `json:"work_hours"`
	ContractType  Text `json:"contract_type"`
	Municipality  Text `json:"municipality"`
	District      Text `json:"district"`
	Country       Text `json:"country"`
	Category      Text `json:"category"`
	Position      Text `json:"position"`
}

// keyFields lists the item fields tried, in order, when deriving a table key.
var keyFields = []func(Item) Text{
	func(i Item) Text { return i.Code },
	func(i Item) Text { return i.Name },
	func(i Item) Text { return i.Description },
	func(i Item) Text { return i.PayRange },
	func(i Item) Text { return i.Experience },
	func(i Item) Text { return i.Qualification },
	func(i Item) Text { return i.WorkHours },
	func(i Item) Text { return i.ContractType },
	func(i Item) Text { return i.Municipality },
	func(i Item) Text { return i.District },
	func(i Item) Text { return i.Country },
	func(i Item) Text { return i.Category },
	func(i Item) Text { return i.Position },
}

// DeriveKey returns the lower-cased table key for item: the first non-empty
// descriptive field, or the id when every field is empty.
func DeriveKey(item Item) string {
	for _, field := range keyFields {
		if value := field(item).String(); value != "" {
			return NormalizeKey(value)
		}
	}
	return NormalizeKey(item.ID.String())
}

// NormalizeKey is the case normalization applied to every table key.
func NormalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func itemID(item Item) (int, bool) {
	raw := item.ID.String()
	if raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}
