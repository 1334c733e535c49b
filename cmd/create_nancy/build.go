package main

import (
	"github.com/cfoust/nancy/pkg/config"
	"github.com/cfoust/nancy/pkg/nancy"
	"github.com/cfoust/nancy/pkg/stream"

	"github.com/rs/zerolog/log"
)

func buildCommand(configs []string, output string) error {
	settings, err := config.Process(configs)
	if err != nil {
		return err
	}

	if output == "" {
		output = settings.Output
	}

	games, err := nancy.LoadGames(settings.Games)
	if err != nil {
		return err
	}

	s, err := stream.Open(output, stream.Write)
	if err != nil {
		log.Fatal().Err(err).Str("path", output).Msg("could not open output file")
	}

	err = nancy.Build(s, games)
	if err != nil {
		s.Close()
		return err
	}

	size := s.Pos()
	err = s.Close()
	if err != nil {
		return err
	}

	log.Info().
		Str("path", output).
		Int("games", len(games)).
		Int64("bytes", size).
		Msg("wrote container")

	return nil
}
