package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cfoust/nancy/pkg/nancy"
	"github.com/cfoust/nancy/pkg/stream"
	"github.com/cfoust/nancy/pkg/utils"

	"github.com/fxamacker/cbor/v2"
	opt "github.com/repeale/fp-go/option"
)

type sectionSummary struct {
	Tag   string `cbor:"tag"`
	Start uint32 `cbor:"start"`
	Next  uint32 `cbor:"next"`
	// Fingerprint of the payload, without the section header
	Hash string `cbor:"hash"`
}

type gameSummary struct {
	Offset     uint32           `cbor:"offset"`
	Languages  []string         `cbor:"languages"`
	NPCs       int              `cbor:"npcs"`
	Goodbyes   int              `cbor:"goodbyes"`
	HintGivers int              `cbor:"hintGivers"`
	EventFlags int              `cbor:"eventFlags"`
	Sections   []sectionSummary `cbor:"sections"`
}

type containerSummary struct {
	Major uint8         `cbor:"major"`
	Minor uint8         `cbor:"minor"`
	Games []gameSummary `cbor:"games"`
}

func summarize(container *nancy.Container, data []byte) containerSummary {
	summary := containerSummary{
		Major: container.Major,
		Minor: container.Minor,
	}

	for _, entry := range container.Games {
		game := entry.Game
		info := gameSummary{
			Offset:     entry.Offset,
			NPCs:       len(game.Dialogue),
			Goodbyes:   len(game.Goodbyes),
			EventFlags: len(game.EventFlagNames),
		}

		if opt.IsSome(game.Hints) {
			info.HintGivers = len(game.Hints.Value.Hints)
		}

		for _, language := range game.Languages {
			info.Languages = append(info.Languages, language.String())
		}

		for _, section := range entry.Sections {
			info.Sections = append(info.Sections, sectionSummary{
				Tag:   section.Tag,
				Start: section.Start,
				Next:  section.Next,
				Hash:  utils.Hash(data[section.PayloadStart():section.Next]),
			})
		}

		summary.Games = append(summary.Games, info)
	}

	return summary
}

func dumpCommand(out io.Writer, path string, asCBOR bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	container, err := nancy.Read(stream.FromBytes(data))
	if err != nil {
		return err
	}

	summary := summarize(container, data)

	if asCBOR {
		data, err := cbor.Marshal(summary)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	fmt.Fprintf(out, "%s %d.%d, %d games\n", nancy.Magic, summary.Major, summary.Minor, len(summary.Games))
	for i, game := range summary.Games {
		fmt.Fprintf(
			out,
			"game %d at %d: languages %v, %d npcs, %d goodbyes, %d hint givers, %d event flags\n",
			i,
			game.Offset,
			game.Languages,
			game.NPCs,
			game.Goodbyes,
			game.HintGivers,
			game.EventFlags,
		)

		for _, section := range game.Sections {
			fmt.Fprintf(
				out,
				"  %s %8d %8d %6d %s\n",
				section.Tag,
				section.Start,
				section.Next,
				section.Next-section.Start,
				section.Hash,
			)
		}
	}

	return nil
}
