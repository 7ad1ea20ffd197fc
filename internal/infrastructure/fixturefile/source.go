package fixturefile

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/riskibarqy/footy-tipping/internal/domain/fixture"
	"github.com/riskibarqy/footy-tipping/internal/platform/logging"
	"gopkg.in/yaml.v3"
)

const SourceName = "file"

// Document is the on-disk layout of a fixture definition file.
//
//	rounds: [1, 2, 3]
//	fixtures:
//	  - id: 1
//	    home_team: Richmond
//	    away_team: Collingwood
//	    venue: MCG
//	    date: "2025-08-23"
//	    time: "19:50"
//	    round: Round 24
type Document struct {
	Season   int               `yaml:"season"`
	Rounds   []int             `yaml:"rounds"`
	Fixtures []fixture.Fixture `yaml:"fixtures"`
}

// Source reads fixtures from a static YAML file. A missing file is a
// configuration problem: it is logged and the source behaves as empty.
type Source struct {
	path   string
	logger *logging.Logger
}

func NewSource(path string, logger *logging.Logger) *Source {
	if logger == nil {
		logger = logging.Default()
	}
	return &Source{path: strings.TrimSpace(path), logger: logger}
}

func (s *Source) Name() string {
	return SourceName
}

// FetchRaw returns the file's fixtures. When round is set only fixtures
// labelled with that round's name are returned.
func (s *Source) FetchRaw(ctx context.Context, _ int, round *int) (fixture.RawResult, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return fixture.RawResult{}, err
	}

	items := doc.Fixtures
	if round != nil {
		name := fixture.RoundName(*round)
		items = make([]fixture.Fixture, 0, len(doc.Fixtures))
		for _, item := range doc.Fixtures {
			if strings.EqualFold(strings.TrimSpace(item.Round), name) {
				items = append(items, item)
			}
		}
	}

	return fixture.RawResult{
		Kind:     fixture.RawKindFile,
		Source:   SourceName,
		Fixtures: items,
	}, nil
}

func (s *Source) FetchRoundNumbers(ctx context.Context, _ int) ([]int, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return append([]int(nil), doc.Rounds...), nil
}

func (s *Source) load(ctx context.Context) (Document, error) {
	if s.path == "" {
		s.logger.WarnContext(ctx, "fixture file path is not configured")
		return Document{}, nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			s.logger.WarnContext(ctx, "fixture file not found, treating source as empty", "path", s.path)
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("read fixture file %s: %w", s.path, err)
	}

	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("decode fixture file %s: %w", s.path, err)
	}
	return doc, nil
}
