package recordcheck

import (
	"fmt"

	"github.com/reoring/recordcheck/internal/logging"
)

var discardLogger = logging.NewNop()

// Record is the capability every variant's record type provides.
type Record interface {
	Kind() Kind
	Fields() (name, value string)
}

// Strings is a loosely constrained name/value pair.
type Strings struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (Strings) Kind() Kind                     { return KindStrings }
func (s Strings) Fields() (name, value string) { return s.Name, s.Value }
func (s Strings) String() string {
	return fmt.Sprintf("Strings(name=%q, value=%q)", s.Name, s.Value)
}

// NewStrings builds a Strings record.
func NewStrings(name, value string) Strings { return Strings{Name: name, Value: value} }

// Colors pairs a name with a hex color value such as "#FF00FF".
type Colors struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (Colors) Kind() Kind                     { return KindColors }
func (c Colors) Fields() (name, value string) { return c.Name, c.Value }
func (c Colors) String() string {
	return fmt.Sprintf("Colors(name=%q, value=%q)", c.Name, c.Value)
}

// NewColors builds a Colors record.
func NewColors(name, value string) Colors { return Colors{Name: name, Value: value} }
