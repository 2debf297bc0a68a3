package tilemapping

import (
	"embed"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/lexistack/cache"
	"github.com/domino14/lexistack/config"
)

const CacheKeyPrefix = "letterdist:"

//go:embed letterdistributions/*.csv
var embeddedDistributions embed.FS

// CacheLoadFunc is the loader used to populate the object cache. A CSV in
// <data-path>/letterdistributions overrides the embedded one of the same
// name.
func CacheLoadFunc(cfg *config.Config, key string) (any, error) {
	if !strings.HasPrefix(key, CacheKeyPrefix) {
		return nil, errors.New("letterdist loadfunc - bad cache key: " + key)
	}
	name := strings.ToLower(strings.TrimPrefix(key, CacheKeyPrefix))
	f, err := openDistribution(cfg, name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ld, err := ScanLetterDistribution(f)
	if err != nil {
		return nil, err
	}
	ld.Name = name
	return ld, nil
}

func openDistribution(cfg *config.Config, name string) (io.ReadCloser, error) {
	if cfg != nil && cfg.Viper != nil {
		dataPath := cfg.GetString(config.ConfigDataPath)
		if dataPath != "" {
			fn := filepath.Join(dataPath, "letterdistributions", name+".csv")
			f, err := os.Open(fn)
			if err == nil {
				log.Debug().Str("file", fn).Msg("using letter distribution from data path")
				return f, nil
			}
			if !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}
	return embeddedDistributions.Open("letterdistributions/" + name + ".csv")
}

// NamedLetterDistribution loads a distribution by name, memoized for the
// life of the process.
func NamedLetterDistribution(cfg *config.Config, name string) (*LetterDistribution, error) {
	obj, err := cache.Load(cfg, CacheKeyPrefix+strings.ToLower(name), CacheLoadFunc)
	if err != nil {
		return nil, err
	}
	ld, ok := obj.(*LetterDistribution)
	if !ok {
		return nil, errors.New("could not read letter distribution " + name)
	}
	return ld, nil
}

// EnglishLetterDistribution returns the English letter distribution.
func EnglishLetterDistribution(cfg *config.Config) (*LetterDistribution, error) {
	return NamedLetterDistribution(cfg, "english")
}
