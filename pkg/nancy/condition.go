package nancy

import (
	"fmt"

	"github.com/cfoust/nancy/pkg/stream"

	"gopkg.in/yaml.v3"
)

type ConditionKind byte

const (
	EventFlagTest ConditionKind = iota
	InventoryTest
	DialogueVariantTest
)

func (k ConditionKind) String() string {
	switch k {
	case EventFlagTest:
		return "flag"
	case InventoryTest:
		return "item"
	case DialogueVariantTest:
		return "variant"
	}
	return fmt.Sprintf("kind(%d)", byte(k))
}

// Flag byte values as the engine reads them.
const (
	flagNotOccurred byte = 1
	flagOccurred    byte = 2

	inventoryEmpty   byte = 0
	inventoryHolding byte = 1
)

// Condition is a single test against game state. On disk it is a signed
// 16-bit index followed by one flag byte whose meaning depends on Kind.
// Dialogue variant tests share the event flag encoding.
type Condition struct {
	Kind  ConditionKind
	Index int16
	Value bool
}

func EventFlag(index int16, set bool) Condition {
	return Condition{Kind: EventFlagTest, Index: index, Value: set}
}

func InventoryItem(index int16, held bool) Condition {
	return Condition{Kind: InventoryTest, Index: index, Value: held}
}

func DialogueVariant(index int16, value bool) Condition {
	return Condition{Kind: DialogueVariantTest, Index: index, Value: value}
}

func (c Condition) flag() byte {
	if c.Kind == InventoryTest {
		if c.Value {
			return inventoryHolding
		}
		return inventoryEmpty
	}

	if c.Value {
		return flagOccurred
	}
	return flagNotOccurred
}

func (c Condition) Marshal(s *stream.Stream) error {
	err := s.WriteInt16(c.Index)
	if err != nil {
		return err
	}
	return s.WriteByte(c.flag())
}

// Unmarshal reads the condition as an event flag test. Arrays that hold
// other kinds decode through their own types.
func (c *Condition) Unmarshal(s *stream.Stream) error {
	return c.read(s, EventFlagTest)
}

func (c *Condition) read(s *stream.Stream, kind ConditionKind) error {
	index, err := s.ReadInt16()
	if err != nil {
		return err
	}

	flag, err := s.ReadByte()
	if err != nil {
		return err
	}

	c.Kind = kind
	c.Index = index
	if kind == InventoryTest {
		c.Value = flag == inventoryHolding
	} else {
		c.Value = flag == flagOccurred
	}

	return nil
}

type conditionDocument struct {
	Flag    *int16 `yaml:"flag"`
	Item    *int16 `yaml:"item"`
	Variant *int16 `yaml:"variant"`
	Value   *bool  `yaml:"value"`
}

// UnmarshalYAML accepts {flag: N}, {item: N} or {variant: N} with an
// optional value, which defaults to true.
func (c *Condition) UnmarshalYAML(node *yaml.Node) error {
	var document conditionDocument
	err := node.Decode(&document)
	if err != nil {
		return err
	}

	value := true
	if document.Value != nil {
		value = *document.Value
	}

	set := 0
	if document.Flag != nil {
		*c = EventFlag(*document.Flag, value)
		set++
	}
	if document.Item != nil {
		*c = InventoryItem(*document.Item, value)
		set++
	}
	if document.Variant != nil {
		*c = DialogueVariant(*document.Variant, value)
		set++
	}

	if set != 1 {
		return fmt.Errorf("line %d: condition needs exactly one of flag, item or variant", node.Line)
	}

	return nil
}

func writeConditions(s *stream.Stream, conditions []Condition) error {
	if len(conditions) > 0xFFFF {
		return fmt.Errorf("too many conditions: %d", len(conditions))
	}

	err := s.WriteUint16(uint16(len(conditions)))
	if err != nil {
		return err
	}

	for _, condition := range conditions {
		err := condition.Marshal(s)
		if err != nil {
			return err
		}
	}

	return nil
}

func readConditions(s *stream.Stream, kind ConditionKind) ([]Condition, error) {
	count, err := s.ReadUint16()
	if err != nil {
		return nil, err
	}

	conditions := make([]Condition, count)
	for i := range conditions {
		err := conditions[i].read(s, kind)
		if err != nil {
			return nil, err
		}
	}

	return conditions, nil
}

// FlagConditions is an array of event flag or dialogue variant tests.
type FlagConditions []Condition

func (f FlagConditions) Marshal(s *stream.Stream) error {
	return writeConditions(s, f)
}

func (f *FlagConditions) Unmarshal(s *stream.Stream) error {
	conditions, err := readConditions(s, EventFlagTest)
	if err != nil {
		return err
	}
	*f = conditions
	return nil
}

// InventoryConditions is an array of inventory item tests.
type InventoryConditions []Condition

func (i InventoryConditions) Marshal(s *stream.Stream) error {
	return writeConditions(s, i)
}

func (i *InventoryConditions) Unmarshal(s *stream.Stream) error {
	conditions, err := readConditions(s, InventoryTest)
	if err != nil {
		return err
	}
	*i = conditions
	return nil
}
