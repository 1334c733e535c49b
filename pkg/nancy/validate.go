package nancy

import (
	"fmt"
	"strings"

	opt "github.com/repeale/fp-go/option"
)

func checkFlagConditions(conditions FlagConditions) error {
	for _, condition := range conditions {
		if condition.Kind == InventoryTest {
			return fmt.Errorf("inventory test on item %d in flag conditions", condition.Index)
		}
	}
	return nil
}

func checkInventoryConditions(conditions InventoryConditions) error {
	for _, condition := range conditions {
		if condition.Kind != InventoryTest {
			return fmt.Errorf("%s test %d in inventory conditions", condition.Kind, condition.Index)
		}
	}
	return nil
}

func checkTextID(texts LocalizedText, languages []Language, id uint8) error {
	for i, lines := range texts {
		if int(id) >= len(lines) {
			return fmt.Errorf("text %d missing for %s (%d lines)", id, languages[i], len(lines))
		}
	}
	return nil
}

// Strings are written NUL-terminated, so an embedded NUL would cut them short.
func checkString(kind string, value string) error {
	if strings.IndexByte(value, 0) >= 0 {
		return fmt.Errorf("%s %q contains a NUL byte", kind, value)
	}
	return nil
}

func checkSound(sound opt.Option[string]) error {
	if opt.IsNone(sound) {
		return nil
	}
	return checkString("sound id", sound.Value)
}

func checkTexts(texts LocalizedText) error {
	for _, lines := range texts {
		for _, line := range lines {
			err := checkString("text", line)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Validate checks that the tables reference each other consistently.
func (g *Game) Validate() error {
	if len(g.Languages) == 0 {
		return fmt.Errorf("no languages")
	}

	seen := make(map[Language]bool)
	for _, language := range g.Languages {
		if seen[language] {
			return fmt.Errorf("language %s listed twice", language)
		}
		seen[language] = true
	}

	if len(g.DialogueTexts) != len(g.Languages) {
		return fmt.Errorf("dialogue text for %d languages, game has %d", len(g.DialogueTexts), len(g.Languages))
	}

	if len(g.GoodbyeTexts) != len(g.Languages) {
		return fmt.Errorf("goodbye text for %d languages, game has %d", len(g.GoodbyeTexts), len(g.Languages))
	}

	err := checkTexts(g.DialogueTexts)
	if err != nil {
		return fmt.Errorf("dialogue: %w", err)
	}

	err = checkTexts(g.GoodbyeTexts)
	if err != nil {
		return fmt.Errorf("goodbyes: %w", err)
	}

	for _, name := range g.EventFlagNames {
		err := checkString("event flag name", name)
		if err != nil {
			return err
		}
	}

	for npc, lines := range g.Dialogue {
		for i, dialogue := range lines {
			err := checkTextID(g.DialogueTexts, g.Languages, dialogue.TextID)
			if err == nil {
				err = checkSound(dialogue.SoundID)
			}
			if err == nil {
				err = checkFlagConditions(dialogue.FlagConditions)
			}
			if err == nil {
				err = checkInventoryConditions(dialogue.InventoryConditions)
			}
			if err != nil {
				return fmt.Errorf("dialogue %d/%d: %w", npc, i, err)
			}
		}
	}

	for i, goodbye := range g.Goodbyes {
		err := checkSound(goodbye.SoundID)
		if err != nil {
			return fmt.Errorf("goodbye %d: %w", i, err)
		}

		for j, change := range goodbye.SceneChanges {
			err := checkFlagConditions(change.FlagConditions)
			if err == nil && change.FlagToSet.Kind != EventFlagTest {
				err = fmt.Errorf("flag to set is a %s test", change.FlagToSet.Kind)
			}
			if err != nil {
				return fmt.Errorf("goodbye %d/%d: %w", i, j, err)
			}
		}
	}

	if opt.IsSome(g.Hints) {
		table := g.Hints.Value
		if len(table.Texts) != len(g.Languages) {
			return fmt.Errorf("hint text for %d languages, game has %d", len(table.Texts), len(g.Languages))
		}

		err := checkTexts(table.Texts)
		if err != nil {
			return fmt.Errorf("hints: %w", err)
		}

		for character, hints := range table.Hints {
			for i, hint := range hints {
				err := checkTextID(table.Texts, g.Languages, hint.TextID)
				for _, sound := range hint.SoundIDs {
					if err == nil {
						err = checkSound(sound)
					}
				}
				if err == nil {
					err = checkFlagConditions(hint.FlagConditions)
				}
				if err == nil {
					err = checkInventoryConditions(hint.InventoryConditions)
				}
				if err != nil {
					return fmt.Errorf("hint %d/%d: %w", character, i, err)
				}
			}
		}
	}

	if opt.IsSome(g.RingingTexts) {
		if len(g.RingingTexts.Value) != len(g.Languages) {
			return fmt.Errorf("ringing text for %d languages, game has %d", len(g.RingingTexts.Value), len(g.Languages))
		}

		for _, line := range g.RingingTexts.Value {
			err := checkString("ringing text", line)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
