package assets

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(s string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(s)}
}

func TestLoadWithFaces(t *testing.T) {
	fsys := fstest.MapFS{
		BackgroundFile:                file("BLACKJACK\n\n"),
		CardBackFile:                  file("###\n###\n"),
		"cards/king_of_spades.txt":    file("K\n♠\n"),
		"cards/10_of_hearts.txt":      file("10\r\n♥\r\n"),
		"cards/joker.txt":             file("?"),
		"cards/ace_of_spades.png":     file("binary"),
		"cards/nested/2_of_clubs.txt": file("2"),
	}

	s, err := Load(fsys)
	require.NoError(t, err)

	assert.Equal(t, []string{"BLACKJACK"}, s.Background().Lines)
	assert.Equal(t, "###\n###", s.CardBack().String())

	face, ok := s.Face(entities.NewCard(entities.King, entities.Spades))
	require.True(t, ok)
	assert.Equal(t, []string{"K", "♠"}, face.Lines)

	face, ok = s.Face(entities.NewCard(entities.Ten, entities.Hearts))
	require.True(t, ok)
	assert.Equal(t, []string{"10", "♥"}, face.Lines)
	assert.Equal(t, 2, face.Width())

	_, ok = s.Face(entities.NewCard(entities.Ace, entities.Spades))
	assert.False(t, ok)

	missing := s.Missing()
	assert.Len(t, missing, entities.DeckSize-2)
	assert.NotContains(t, missing, "king_of_spades")
	assert.Contains(t, missing, "2_of_clubs")
}

func TestLoadMissingRequiredAssets(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"no background", fstest.MapFS{CardBackFile: file("###")}},
		{"no card back", fstest.MapFS{BackgroundFile: file("BLACKJACK"), "cards/king_of_spades.txt": file("K")}},
		{"empty background", fstest.MapFS{BackgroundFile: file("\n \n"), CardBackFile: file("###")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(tt.fsys)
			assert.Nil(t, s)
			assert.True(t, types.IsGameError(err, types.ErrAssetMissing), "got %v", err)
		})
	}
}

func TestDefaults(t *testing.T) {
	s, err := Defaults()
	require.NoError(t, err)
	assert.NotEmpty(t, s.Background().Lines)
	assert.Len(t, s.CardBack().Lines, 5)
	assert.Len(t, s.Missing(), entities.DeckSize)

	s, err = NewService("")
	require.NoError(t, err)
	assert.NotEmpty(t, s.Background().Lines)
}

func TestNewServiceFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cards"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, BackgroundFile), []byte("TABLE"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, CardBackFile), []byte("###"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cards", "ace_of_hearts.txt"), []byte("A♥"), 0o644))

	s, err := NewService(dir)
	require.NoError(t, err)
	assert.Equal(t, "TABLE", s.Background().String())
	_, ok := s.Face(entities.NewCard(entities.Ace, entities.Hearts))
	assert.True(t, ok)
}

func TestNewServiceMissingDir(t *testing.T) {
	_, err := NewService(filepath.Join(t.TempDir(), "nope"))
	assert.True(t, types.IsGameError(err, types.ErrAssetMissing))
}
