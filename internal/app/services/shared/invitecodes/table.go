package invitecodes

import (
	"os"
	"provider-directory/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

// Table maps user codes to practitioner ids and admin codes to organization ids.
type Table struct {
	User  map[string]string `json:"user"`
	Admin map[string]string `json:"admin"`
}

// LoadTable reads a table from a JSON file of the form {"user":{...},"admin":{...}}.
func LoadTable(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Table{}, exceptions.ErrInviteCodeLookup(err)
	}

	var table Table
	if err := json.Unmarshal(raw, &table); err != nil {
		return Table{}, exceptions.ErrCannotParseJSON(err)
	}
	return table, table.validate()
}

func (t Table) validate() error {
	for code := range t.User {
		if _, ok := t.Admin[code]; ok {
			return exceptions.ErrInviteCodeTierConflict(code)
		}
	}
	return nil
}
