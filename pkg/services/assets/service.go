package assets

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/entities"
)

const (
	BackgroundFile = "background.txt"
	CardBackFile   = "cards/back.txt"
	cardsDir       = "cards"
)

//go:embed defaults
var embedded embed.FS

// Service provides the art drawn by the terminal. The background and card
// back are always present; card faces are optional.
type Service struct {
	background entities.Image
	back       entities.Image
	faces      map[string]entities.Image
}

// NewService loads assets from dir, or from the built-in set when dir is empty
func NewService(dir string) (*Service, error) {
	if dir == "" {
		return Defaults()
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, types.WrapError(types.ErrAssetMissing, fmt.Sprintf("assets directory %s not found", dir), err)
	}
	return Load(os.DirFS(dir))
}

// Defaults loads the built-in assets
func Defaults() (*Service, error) {
	sub, err := fs.Sub(embedded, "defaults")
	if err != nil {
		return nil, types.WrapError(types.ErrInternalError, "embedded assets unreadable", err)
	}
	return Load(sub)
}

// Load reads assets from fsys. A missing background or card back fails with
// ASSET_MISSING. Face files are named <rank>_of_<suit>.txt under cards/;
// absent or unparseable names are left out of the lookup.
func Load(fsys fs.FS) (*Service, error) {
	background, err := readRequired(fsys, BackgroundFile)
	if err != nil {
		return nil, err
	}
	back, err := readRequired(fsys, CardBackFile)
	if err != nil {
		return nil, err
	}

	s := &Service{
		background: background,
		back:       back,
		faces:      make(map[string]entities.Image),
	}

	entries, err := fs.ReadDir(fsys, cardsDir)
	if err != nil {
		return nil, types.WrapError(types.ErrAssetMissing, "card assets unreadable", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".txt" {
			continue
		}
		card, err := entities.ParseCard(strings.TrimSuffix(name, ".txt"))
		if err != nil {
			continue
		}
		img, err := readImage(fsys, path.Join(cardsDir, name))
		if err != nil {
			continue
		}
		s.faces[card.ID()] = img
	}

	return s, nil
}

// Background returns the title art
func (s *Service) Background() entities.Image {
	return s.background
}

// CardBack returns the face-down card art
func (s *Service) CardBack() entities.Image {
	return s.back
}

// Face returns the art for a card if it was provided
func (s *Service) Face(card entities.Card) (entities.Image, bool) {
	img, ok := s.faces[card.ID()]
	return img, ok
}

// Missing lists the IDs of cards with no face art
func (s *Service) Missing() []string {
	var missing []string
	for _, suit := range entities.Suits {
		for _, rank := range entities.Ranks {
			id := entities.NewCard(rank, suit).ID()
			if _, ok := s.faces[id]; !ok {
				missing = append(missing, id)
			}
		}
	}
	return missing
}

func readRequired(fsys fs.FS, name string) (entities.Image, error) {
	img, err := readImage(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return entities.Image{}, types.WrapError(types.ErrAssetMissing, fmt.Sprintf("required asset %s is missing", name), err)
	}
	if err != nil {
		return entities.Image{}, types.WrapError(types.ErrAssetMissing, fmt.Sprintf("required asset %s is unreadable", name), err)
	}
	if len(img.Lines) == 0 {
		return entities.Image{}, types.NewGameError(types.ErrAssetMissing, fmt.Sprintf("required asset %s is empty", name))
	}
	return img, nil
}

func readImage(fsys fs.FS, name string) (entities.Image, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return entities.Image{}, err
	}
	defer file.Close()

	img := entities.Image{Name: name}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		img.Lines = append(img.Lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return entities.Image{}, err
	}

	// trailing blank lines carry no art
	for len(img.Lines) > 0 && strings.TrimSpace(img.Lines[len(img.Lines)-1]) == "" {
		img.Lines = img.Lines[:len(img.Lines)-1]
	}
	return img, nil
}
