package main

import (
	"io"

	"github.com/cfoust/nancy/pkg/config"
)

func configCommand(out io.Writer, configs []string) error {
	if len(configs) == 0 {
		_, err := out.Write(config.DEFAULT)
		return err
	}

	settings, err := config.Process(configs)
	if err != nil {
		return err
	}

	data, err := settings.Dump()
	if err != nil {
		return err
	}

	_, err = out.Write(data)
	return err
}
