package main

import (
	"context"
	"io"

	"github.com/cfoust/nancy/pkg/assets"
	"github.com/cfoust/nancy/pkg/blit"
	"github.com/cfoust/nancy/pkg/config"

	"github.com/go-redis/redis/v9"
	"github.com/rs/zerolog/log"
)

type scaleOptions struct {
	Input   string
	Output  string
	Width   int
	Height  int
	FlipH   bool
	FlipV   bool
	Configs []string
}

func (o scaleOptions) flip() blit.Flip {
	flip := blit.FlipNone
	if o.FlipH {
		flip |= blit.FlipH
	}
	if o.FlipV {
		flip |= blit.FlipV
	}
	return flip
}

// openStore returns the cache backend selected by settings. Redis takes
// precedence over a cache directory.
func openStore(settings config.CacheConfig) (assets.Store, io.Closer) {
	if settings.Redis != "" {
		client := redis.NewClient(&redis.Options{
			Addr: settings.Redis,
		})
		return assets.NewRedisCache(client, settings.Expiry()), client
	}

	if settings.Directory != "" {
		return assets.FSStore(settings.Directory), nil
	}

	return nil, nil
}

func scaleCommand(ctx context.Context, options scaleOptions) error {
	settings, err := config.Process(options.Configs)
	if err != nil {
		return err
	}

	store, closer := openStore(settings.Cache)
	if closer != nil {
		defer closer.Close()
	}

	img, err := assets.LoadImage(options.Input)
	if err != nil {
		return err
	}

	src := blit.FromImage(img)

	cache := assets.NewScaleCache(store, settings.Cache.Compress)
	scaled, err := cache.Scale(ctx, src, options.Width, options.Height, options.flip())
	if err != nil {
		return err
	}

	result, err := scaled.Image()
	if err != nil {
		return err
	}

	err = assets.SaveImage(options.Output, result)
	if err != nil {
		return err
	}

	log.Info().
		Str("input", options.Input).
		Str("output", options.Output).
		Int("width", options.Width).
		Int("height", options.Height).
		Msg("scaled image")

	return nil
}
