// Package submission builds the scored record handed to minting
// collaborators: a metadata document, the drawing and a bundle id.
package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/promraw/internal/canvas"
)

const (
	DrawingFile  = "drawing.png"
	MetadataFile = "metadata.json"
	CardFile     = "promraw-nft-card.png"
)

// Attribute is a single metadata trait.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}

// Metadata is the token metadata document.
type Metadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Attributes  []Attribute `json:"attributes"`
}

// Rarity buckets a score.
func Rarity(score int) string {
	switch {
	case score >= 90:
		return "Legendary"
	case score >= 70:
		return "Rare"
	}
	return "Common"
}

// Tokens is the reward for a score.
func Tokens(score int) int {
	if score < 0 {
		return 0
	}
	return score / 10
}

// Message is the encouragement shown with a score.
func Message(score int) string {
	switch {
	case score >= 90:
		return "Outstanding! Your creativity knows no bounds!"
	case score >= 70:
		return "Great work! Keep pushing your artistic limits!"
	}
	return "Nice attempt! Practice makes perfect!"
}

// Scorer rates a drawing against its prompt on a 0-100 scale.
type Scorer interface {
	Score(ctx context.Context, prompt string, drawing canvas.EncodedImage) (int, error)
}

// MockScorer returns a random score between 70 and 99.
type MockScorer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewMockScorer returns a MockScorer. A nil rnd is seeded from the clock.
func NewMockScorer(rnd *rand.Rand) *MockScorer {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &MockScorer{rnd: rnd}
}

func (m *MockScorer) Score(ctx context.Context, _ string, drawing canvas.EncodedImage) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if drawing.Empty() {
		return 0, fmt.Errorf("score: empty drawing")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return 70 + m.rnd.Intn(30), nil
}

// Bundle is a scored drawing ready to be stored.
type Bundle struct {
	ID       uuid.UUID
	Prompt   string
	Score    int
	Created  time.Time
	Metadata Metadata
	Drawing  canvas.EncodedImage
}

// New assembles a bundle. The metadata image is the drawing as a data URI so
// the record is self-contained until a storage collaborator replaces it.
func New(prompt string, score int, drawing canvas.EncodedImage, now time.Time) (*Bundle, error) {
	if drawing.Empty() {
		return nil, fmt.Errorf("submission: empty drawing")
	}
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("submission: score %d out of range", score)
	}
	return &Bundle{
		ID:      uuid.New(),
		Prompt:  prompt,
		Score:   score,
		Created: now,
		Drawing: drawing,
		Metadata: Metadata{
			Name:        "Promraw #" + strconv.FormatInt(now.UnixMilli(), 10),
			Description: prompt,
			Image:       drawing.DataURI(),
			Attributes: []Attribute{
				{TraitType: "Score", Value: score},
				{TraitType: "Rarity", Value: Rarity(score)},
			},
		},
	}, nil
}

// Summary is the score modal text.
func (b *Bundle) Summary() string {
	return fmt.Sprintf("AI Score: %d\n%s\n+%d ERC7007 Tokens Earned", b.Score, Message(b.Score), Tokens(b.Score))
}

// WriteDir writes the drawing and metadata into dir/<id>, creating it, and
// returns that directory. When card is non-empty it is written too.
func (b *Bundle) WriteDir(dir string, card canvas.EncodedImage) (string, error) {
	out := filepath.Join(dir, b.ID.String())
	if err := os.MkdirAll(out, 0o755); err != nil {
		return "", fmt.Errorf("create bundle dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(out, DrawingFile), b.Drawing.Data, 0o644); err != nil {
		return "", fmt.Errorf("write drawing: %w", err)
	}
	if !card.Empty() {
		if err := os.WriteFile(filepath.Join(out, CardFile), card.Data, 0o644); err != nil {
			return "", fmt.Errorf("write card: %w", err)
		}
	}
	data, err := json.MarshalIndent(b.Metadata, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(out, MetadataFile), append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	return out, nil
}

// ReadMetadata loads a metadata.json written by WriteDir.
func ReadMetadata(path string) (Metadata, error) {
	var m Metadata
	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decode %s: %w", path, err)
	}
	return m, nil
}

// LeaderboardEntry is one row of the leaderboard panel.
type LeaderboardEntry struct {
	Name  string
	Score int
}

// Leaderboard returns the fixed leaderboard shown until a real one is
// connected.
func Leaderboard() []LeaderboardEntry {
	return []LeaderboardEntry{
		{"Artmaster", 98},
		{"CreativeGenius", 95},
		{"PixelPro", 92},
	}
}
